package sampling

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/raster"
	"github.com/angelinath21/Reflectra/util"
)

// Collection-2 Level-2 scale factors. These are fixed domain constants for
// the sensor product and must stay literal for bit-compatible output.
const (
	reflectanceScale  = 2.75e-05
	reflectanceOffset = -0.2
	temperatureScale  = 0.00341802
	temperatureOffset = 149.0
	kelvinToCelsius   = 273.15
)

// DNToReflectance converts a raw digital number to surface reflectance
func DNToReflectance(dn float64) float64 {
	return reflectanceScale*dn + reflectanceOffset
}

// DNToTemperatureK converts a raw digital number to surface temperature in
// kelvin
func DNToTemperatureK(dn float64) float64 {
	return temperatureScale*dn + temperatureOffset
}

// KelvinToCelsius converts kelvin to celsius
func KelvinToCelsius(kelvin float64) float64 {
	return kelvin - kelvinToCelsius
}

// SampleScene reads one digital number per band at the fixed pixel and
// converts it to physical units. A failure on one band is stored as that
// band's error placeholder and never aborts the remaining bands.
func SampleScene(sceneDir string, pixelX, pixelY int) model.SampleRecord {
	sceneName := filepath.Base(sceneDir)
	record := model.SampleRecord{}

	for _, band := range model.ReflectanceBands {
		bandPath := filepath.Join(sceneDir, model.BandFileName(sceneName, band))
		dn, err := raster.ReadPixel(bandPath, pixelX, pixelY)
		if err != nil {
			record[band] = model.ErrorSample(err)
			continue
		}
		record[band] = model.ReflectanceSample(DNToReflectance(dn))
	}

	thermalPath := filepath.Join(sceneDir, model.BandFileName(sceneName, model.TemperatureBand))
	dn, err := raster.ReadPixel(thermalPath, pixelX, pixelY)
	if err != nil {
		record[model.TemperatureBand] = model.ErrorSample(err)
	} else {
		kelvin := DNToTemperatureK(dn)
		record[model.TemperatureBand] = model.TemperatureSample(kelvin, KelvinToCelsius(kelvin))
	}
	return record
}

// SampleAll samples every scene directory under raw_data at the same fixed
// pixel, writing one JSON record per scene
func SampleAll(rootDirectory string, pixelX, pixelY int, ctx util.LogContext) error {
	rawDataDir := filepath.Join(rootDirectory, model.RawDataDir)
	entries, err := os.ReadDir(rawDataDir)
	if err != nil {
		return util.LogSimpleErr(ctx, "Failed to list raw-data directory "+rawDataDir+".", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sceneDir := filepath.Join(rawDataDir, entry.Name())
		util.LogInfo(ctx, "Processing folder: "+entry.Name())

		record := SampleScene(sceneDir, pixelX, pixelY)
		outputPath := filepath.Join(sceneDir, model.SampleFileName(entry.Name()))
		payload, err := json.MarshalIndent(record, "", "    ")
		if err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Failed to marshal samples for %s: %v", entry.Name(), err))
			continue
		}
		if err = os.WriteFile(outputPath, payload, 0644); err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Failed to write %s: %v", outputPath, err))
			continue
		}
		util.LogInfo(ctx, "Reflectance and temperature data saved to "+outputPath)
	}
	return nil
}
