// Copyright 2024, the Reflectra authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package usgs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// AcquireOptions are the parameters for an acquisition run
type AcquireOptions struct {
	Search        SearchOptions
	MostRecent    bool
	RootDirectory string
}

// AcquireScenes runs the acquisition stage: search, write footprints,
// download bundles, and read back the calibration record. A per-scene
// download failure is recorded and skipped; it never aborts the remaining
// scenes.
func AcquireScenes(options AcquireOptions, context *Context) (model.AcquisitionOutcome, error) {
	rawDataDir := filepath.Join(options.RootDirectory, model.RawDataDir)
	footprintDir := filepath.Join(options.RootDirectory, model.FootprintDir)
	for _, dir := range []string{rawDataDir, footprintDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return model.NotFound(), util.LogSimpleErr(context, "Failed to create directory "+dir+".", err)
		}
	}

	if options.MostRecent {
		// Override the range: start of the current year through today.
		now := time.Now()
		options.Search.StartDate = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC).Format(model.StandardDateLayout)
		options.Search.EndDate = now.Format(model.StandardDateLayout)
	}

	if err := Login(context); err != nil {
		return model.NotFound(), err
	}
	defer Logout(context)

	scenes, err := SearchScenes(options.Search, context)
	if err != nil {
		return model.NotFound(), err
	}
	util.LogInfo(context, fmt.Sprintf("%d scenes found.", len(scenes)))

	if len(scenes) == 0 {
		return model.NotFound(), nil
	}
	if options.MostRecent {
		scenes = scenes[:1]
	}

	var calibration model.CalibrationRecord
	processed := make([]model.Scene, 0, len(scenes))
	sceneErrors := map[string]error{}

	for _, scene := range scenes {
		util.LogInfo(context, fmt.Sprintf("Acquisition Date: %s, Product ID: %s",
			scene.AcquiredDate.Format(model.StandardDateLayout), scene.ProductID))

		if err := writeFootprint(scene, footprintDir, context); err != nil {
			sceneErrors[scene.ProductID] = err
			continue
		}

		if _, err := DownloadBundle(scene, rawDataDir, context); err != nil {
			util.LogAlert(context, fmt.Sprintf("Error downloading scene %s: %v", scene.ProductID, err))
			sceneErrors[scene.ProductID] = err
			continue
		}
		util.LogInfo(context, fmt.Sprintf("Surface reflectance data for %s downloaded successfully.", scene.ProductID))
		processed = append(processed, scene)

		if calibration == nil {
			calibration = readCalibrationRecord(rawDataDir, scene.ProductID, context)
		}
	}

	return model.Found(calibration, processed, sceneErrors), nil
}

func writeFootprint(scene model.Scene, footprintDir string, context *Context) error {
	if scene.Geometry == nil {
		util.LogAlert(context, "Scene "+scene.ProductID+" has no footprint geometry; skipping footprint document.")
		return nil
	}
	destPath := filepath.Join(footprintDir, model.FootprintFileName(scene.ProductID))
	if err := geojson.WriteFile(scene.Geometry, destPath); err != nil {
		return util.LogSimpleErr(context, "Failed to write footprint "+destPath+".", err)
	}
	return nil
}

// readCalibrationRecord reads the one JSON metadata document matching the
// product id out of the raw-data directory and extracts the min/max
// reflectance calibration sub-record. Absence is a warning, not an error.
func readCalibrationRecord(rawDataDir, productID string, context *Context) model.CalibrationRecord {
	metadataPath := filepath.Join(rawDataDir, productID+".json")
	data, err := os.ReadFile(metadataPath)
	if err != nil {
		util.LogAlert(context, fmt.Sprintf("Warning: Reflectance file '%s' not found after download.", metadataPath))
		return nil
	}

	var document map[string]json.RawMessage
	if err = json.Unmarshal(data, &document); err != nil {
		util.LogAlert(context, "Failed to parse metadata document "+metadataPath+": "+err.Error())
		return nil
	}

	raw, ok := document[model.CalibrationField]
	if !ok {
		return model.CalibrationRecord{}
	}
	calibration := model.CalibrationRecord{}
	if err = json.Unmarshal(raw, &calibration); err != nil {
		util.LogAlert(context, "Failed to parse calibration record in "+metadataPath+": "+err.Error())
		return nil
	}
	return calibration
}
