package metadata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
)

// The provider's metadata document nests everything under a single root key.
const documentRoot = "LANDSAT_METADATA_FILE"

var attributeKeys = []struct {
	source string
	assign func(*model.ImageAttributes, interface{})
}{
	{"SPACECRAFT_ID", func(a *model.ImageAttributes, v interface{}) { a.SpacecraftID = v }},
	{"SENSOR_ID", func(a *model.ImageAttributes, v interface{}) { a.SensorID = v }},
	{"STATION_ID", func(a *model.ImageAttributes, v interface{}) { a.StationID = v }},
	{"DATE_ACQUIRED", func(a *model.ImageAttributes, v interface{}) { a.DateAcquired = v }},
	{"SCENE_CENTER_TIME", func(a *model.ImageAttributes, v interface{}) { a.TimeAcquired = v }},
	{"WRS_TYPE", func(a *model.ImageAttributes, v interface{}) { a.WRSType = v }},
	{"WRS_PATH", func(a *model.ImageAttributes, v interface{}) { a.WRSPath = v }},
	{"WRS_ROW", func(a *model.ImageAttributes, v interface{}) { a.WRSRow = v }},
	{"IMAGE_QUALITY", func(a *model.ImageAttributes, v interface{}) { a.ImageQuality = v }},
	{"CLOUD_COVER", func(a *model.ImageAttributes, v interface{}) { a.CloudCover = v }},
	{"CLOUD_COVER_LAND", func(a *model.ImageAttributes, v interface{}) { a.CloudCoverLand = v }},
	{"SUN_AZIMUTH", func(a *model.ImageAttributes, v interface{}) { a.SunAzimuth = v }},
	{"SUN_ELEVATION", func(a *model.ImageAttributes, v interface{}) { a.SunElevation = v }},
	{"EARTH_SUN_DISTANCE", func(a *model.ImageAttributes, v interface{}) { a.EarthSunDistance = v }},
}

var cornerLabels = []string{"UL", "UR", "LL", "LR"}

// FindMetadataDocument locates the first file in the scene directory tree
// whose name contains the metadata marker and ends with a JSON extension.
// Returns an empty string when none exists.
func FindMetadataDocument(sceneDir string) string {
	found := ""
	filepath.WalkDir(sceneDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		name := d.Name()
		if strings.Contains(name, model.MetadataMarker) && strings.HasSuffix(name, ".json") {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// ExtractScene projects a scene's metadata document into the normalized
// summary and writes it into the scene directory. Returns nil (no error)
// when the scene has no metadata document; per spec the absence is reported
// and the scene is skipped.
func ExtractScene(sceneDir string, ctx util.LogContext) (*model.MetadataSummary, error) {
	documentPath := FindMetadataDocument(sceneDir)
	if documentPath == "" {
		util.LogAlert(ctx, "No metadata document found in "+sceneDir+".")
		return nil, nil
	}
	util.LogInfo(ctx, "Found metadata document at: "+documentPath)

	data, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, util.LogSimpleErr(ctx, "Failed to read metadata document "+documentPath+".", err)
	}

	var document map[string]map[string]map[string]interface{}
	if err = json.Unmarshal(data, &document); err != nil {
		return nil, util.LogSimpleErr(ctx, "Failed to parse metadata document "+documentPath+".", err)
	}

	summary := &model.MetadataSummary{
		ImageAttributes: extractImageAttributes(document[documentRoot]["IMAGE_ATTRIBUTES"]),
		Coordinates:     extractCoordinates(document[documentRoot]["PROJECTION_ATTRIBUTES"], ctx),
	}

	sceneName := filepath.Base(sceneDir)
	outputPath := filepath.Join(sceneDir, model.SummaryFileName(sceneName))
	payload, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		return nil, util.LogSimpleErr(ctx, "Failed to marshal metadata summary for "+sceneName+".", err)
	}
	if err = os.WriteFile(outputPath, payload, 0644); err != nil {
		return nil, util.LogSimpleErr(ctx, "Failed to write metadata summary "+outputPath+".", err)
	}
	util.LogInfo(ctx, "Extracted metadata has been written to "+outputPath)
	return summary, nil
}

// ExtractAll runs extraction over every scene directory under raw_data,
// best effort
func ExtractAll(rootDirectory string, ctx util.LogContext) error {
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
		util.LogInfo(ctx, "Processing folder: "+sceneDir)
		if _, err := ExtractScene(sceneDir, ctx); err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Metadata extraction failed for %s: %v", entry.Name(), err))
		}
	}
	return nil
}

// extractImageAttributes projects the fixed attribute set; fields absent
// from the source stay nil and render as JSON null
func extractImageAttributes(attributes map[string]interface{}) model.ImageAttributes {
	result := model.ImageAttributes{}
	for _, key := range attributeKeys {
		if value, ok := attributes[key.source]; ok {
			key.assign(&result, value)
		}
	}
	return result
}

// extractCoordinates pulls the four corner pairs; a pair with either half
// missing is skipped with a warning, and values are coerced to float64
func extractCoordinates(projection map[string]interface{}, ctx util.LogContext) model.Coordinates {
	coordinates := model.Coordinates{}
	for _, corner := range cornerLabels {
		latKey := fmt.Sprintf("CORNER_%s_LAT_PRODUCT", corner)
		lonKey := fmt.Sprintf("CORNER_%s_LON_PRODUCT", corner)

		lat, latOK := coerceFloat(projection[latKey])
		lon, lonOK := coerceFloat(projection[lonKey])
		if !latOK || !lonOK {
			util.LogAlert(ctx, fmt.Sprintf("Warning: %s or %s is missing.", latKey, lonKey))
			continue
		}
		coordinates[corner+"_lat"] = lat
		coordinates[corner+"_lon"] = lon
	}
	return coordinates
}

func coerceFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
