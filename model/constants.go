package model

import "fmt"

// Directory layout, relative to the pipeline root directory. Every stage
// assumes this exact layout; the file names below are the contract between
// stages.
const (
	RawDataDir       = "raw_data"
	FootprintDir     = "scene_footprints"
	ResultsDir       = "results"
	MetadataMarker   = "MTL"
	STACSuffix       = "_SR_stac.json"
	ArchiveSuffix    = ".tar"
	CalibrationField = "LEVEL1_MIN_MAX_REFLECTANCE"
)

// ReflectanceBands are the surface-reflectance band labels, in product order
var ReflectanceBands = []string{"B1", "B2", "B3", "B4", "B5", "B6", "B7"}

// TemperatureBand is the surface-temperature band label
const TemperatureBand = "B10"

// SampleBandOrder is the fixed order in which sampled bands are written out
var SampleBandOrder = []string{"B1", "B2", "B3", "B4", "B5", "B6", "B7", "B10"}

// BandFileName returns the raster file name for a scene's band. Reflectance
// bands carry an SR prefix, the thermal band an ST prefix.
func BandFileName(scene, band string) string {
	if band == TemperatureBand {
		return fmt.Sprintf("%s_ST_%s.TIF", scene, band)
	}
	return fmt.Sprintf("%s_SR_%s.TIF", scene, band)
}

// SummaryFileName returns the per-scene metadata summary document name
func SummaryFileName(scene string) string {
	return scene + "_SUMMARY.json"
}

// SampleFileName returns the per-scene reflectance/temperature record name
func SampleFileName(scene string) string {
	return scene + "_SR_ST_values.json"
}

// CompositeFileName returns the per-scene composite raster name
func CompositeFileName(scene string) string {
	return "stacked_img_" + scene + ".tif"
}

// ChartFileName returns the per-scene reflectance chart image name
func ChartFileName(scene string) string {
	return "surface_reflectance_" + scene + ".jpg"
}

// SummaryImageFileName returns the per-scene metadata table image name
func SummaryImageFileName(scene string) string {
	return "summary_" + scene + ".jpg"
}

// CSVFileName returns the per-scene hierarchical CSV export name
func CSVFileName(scene string) string {
	return "data_" + scene + ".csv"
}

// FootprintFileName returns the footprint geometry document name for a
// product id
func FootprintFileName(productID string) string {
	return productID + ".geojson"
}
