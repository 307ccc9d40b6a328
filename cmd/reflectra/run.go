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

package main

import (
	"encoding/json"
	"fmt"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/angelinath21/Reflectra/archive"
	"github.com/angelinath21/Reflectra/composite"
	"github.com/angelinath21/Reflectra/metadata"
	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/report"
	"github.com/angelinath21/Reflectra/sampling"
	"github.com/angelinath21/Reflectra/usgs"
	"github.com/angelinath21/Reflectra/util"
)

const defaultDataset = "landsat_ot_c2_l2"

var runFlags = []cli.Flag{
	cli.Float64Flag{Name: "lat", Usage: "Latitude of the point of interest"},
	cli.Float64Flag{Name: "lon", Usage: "Longitude of the point of interest"},
	cli.StringFlag{Name: "start", Usage: "Start of the acquisition date range (YYYY-MM-DD)"},
	cli.StringFlag{Name: "end", Usage: "End of the acquisition date range (YYYY-MM-DD)"},
	cli.IntFlag{Name: "max-cloud", Value: 100, Usage: "Maximum acceptable cloud cover percentage"},
	cli.BoolFlag{Name: "most-recent", Usage: "Process only the most recent scene of the current year"},
	cli.StringFlag{Name: "dataset", Value: defaultDataset, Usage: "Provider dataset to search"},
	cli.IntFlag{Name: "pixel-x", Value: 3000, Usage: "Column of the sampled pixel"},
	cli.IntFlag{Name: "pixel-y", Value: 3000, Usage: "Row of the sampled pixel"},
	cli.StringFlag{Name: "root", EnvVar: util.REFLECTRA_ROOT, Usage: "Working directory for scene data and results"},
}

// runAction executes the full pipeline: acquisition, archive expansion,
// metadata extraction, pixel sampling, compositing and reporting
func runAction(c *cli.Context) {
	logContext := &(util.BasicLogContext{})
	util.LoadDotEnv(logContext)
	if err := util.ApplySecretsFile(logContext); err != nil {
		util.LogAlert(logContext, fmt.Sprintf("Failed to apply secrets file: %v", err))
	}

	rootDirectory := c.String("root")
	if rootDirectory == "" {
		rootDirectory = util.GetRootDirectory()
	}

	username, token := util.GetM2MCredentials()
	providerContext := &usgs.Context{
		BaseAPIURL: util.GetM2MAPIURL(),
		Username:   username,
		Token:      token,
	}

	options := usgs.AcquireOptions{
		Search: usgs.SearchOptions{
			Dataset:       c.String("dataset"),
			Latitude:      c.Float64("lat"),
			Longitude:     c.Float64("lon"),
			StartDate:     c.String("start"),
			EndDate:       c.String("end"),
			MaxCloudCover: c.Int("max-cloud"),
		},
		MostRecent:    c.Bool("most-recent"),
		RootDirectory: rootDirectory,
	}

	outcome, err := usgs.AcquireScenes(options, providerContext)
	if err != nil {
		util.LogAlert(logContext, fmt.Sprintf("Acquisition failed: %v", err))
		return
	}
	if outcome.Status == model.AcquisitionNotFound {
		util.LogInfo(logContext, "No scenes matched the search, nothing to process.")
		return
	}
	for productID, sceneErr := range outcome.SceneErrors {
		util.LogAlert(logContext, fmt.Sprintf("Scene %s failed to download: %v", productID, sceneErr))
	}
	if len(outcome.Calibration) > 0 {
		if payload, err := json.MarshalIndent(outcome.Calibration, "", "    "); err == nil {
			util.LogInfo(logContext, "Calibration record:\n"+string(payload))
		}
	}

	if err = archive.ExpandAll(rootDirectory, logContext); err != nil {
		util.LogAlert(logContext, fmt.Sprintf("Archive expansion failed: %v", err))
		return
	}
	if err = metadata.ExtractAll(rootDirectory, logContext); err != nil {
		util.LogAlert(logContext, fmt.Sprintf("Metadata extraction failed: %v", err))
		return
	}
	if err = sampling.SampleAll(rootDirectory, c.Int("pixel-x"), c.Int("pixel-y"), logContext); err != nil {
		util.LogAlert(logContext, fmt.Sprintf("Pixel sampling failed: %v", err))
		return
	}
	if err = composite.ComposeAll(rootDirectory, logContext); err != nil {
		util.LogAlert(logContext, fmt.Sprintf("Compositing failed: %v", err))
		return
	}
	if err = report.RenderAll(rootDirectory, logContext); err != nil {
		util.LogAlert(logContext, fmt.Sprintf("Reporting failed: %v", err))
		return
	}
	util.LogInfo(logContext, "Pipeline complete.")
}
