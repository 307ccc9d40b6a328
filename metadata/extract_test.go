package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
	"github.com/stretchr/testify/assert"
)

const testScene = "LC08_L2SP_093086_20230914_20230920_02_T1"

func writeTestDocument(t *testing.T, sceneDir string, imageAttributes, projection map[string]interface{}) {
	t.Helper()
	document := map[string]interface{}{
		"LANDSAT_METADATA_FILE": map[string]interface{}{
			"IMAGE_ATTRIBUTES":      imageAttributes,
			"PROJECTION_ATTRIBUTES": projection,
		},
	}
	payload, err := json.Marshal(document)
	assert.Nil(t, err)
	assert.Nil(t, os.WriteFile(filepath.Join(sceneDir, testScene+"_MTL.json"), payload, 0644))
}

func fullImageAttributes() map[string]interface{} {
	return map[string]interface{}{
		"SPACECRAFT_ID": "LANDSAT_8", "SENSOR_ID": "OLI_TIRS", "STATION_ID": "LGN",
		"DATE_ACQUIRED": "2023-09-14", "SCENE_CENTER_TIME": "23:44:12.0Z",
		"WRS_TYPE": "2", "WRS_PATH": "93", "WRS_ROW": "86", "IMAGE_QUALITY": "9",
		"CLOUD_COVER": "3.21", "CLOUD_COVER_LAND": "3.21",
		"SUN_AZIMUTH": "51.68", "SUN_ELEVATION": "44.02", "EARTH_SUN_DISTANCE": "1.0049",
	}
}

func fullProjection() map[string]interface{} {
	return map[string]interface{}{
		"CORNER_UL_LAT_PRODUCT": "-37.03", "CORNER_UL_LON_PRODUCT": "144.29",
		"CORNER_UR_LAT_PRODUCT": "-37.05", "CORNER_UR_LON_PRODUCT": "146.93",
		"CORNER_LL_LAT_PRODUCT": "-39.15", "CORNER_LL_LON_PRODUCT": "144.25",
		"CORNER_LR_LAT_PRODUCT": "-39.17", "CORNER_LR_LON_PRODUCT": "146.97",
	}
}

func TestExtractSceneFullDocument(t *testing.T) {
	sceneDir := filepath.Join(t.TempDir(), testScene)
	assert.Nil(t, os.MkdirAll(sceneDir, 0755))
	writeTestDocument(t, sceneDir, fullImageAttributes(), fullProjection())

	summary, err := ExtractScene(sceneDir, &util.BasicLogContext{})
	assert.Nil(t, err, "%v", err)
	assert.NotNil(t, summary)
	assert.Equal(t, "LANDSAT_8", summary.ImageAttributes.SpacecraftID)
	assert.Equal(t, "23:44:12.0Z", summary.ImageAttributes.TimeAcquired)
	assert.Len(t, summary.Coordinates, 8)
	assert.InDelta(t, -37.03, summary.Coordinates["UL_lat"], 1e-9)
	assert.InDelta(t, 146.97, summary.Coordinates["LR_lon"], 1e-9)

	// The summary document lands inside the scene directory.
	written, err := os.ReadFile(filepath.Join(sceneDir, model.SummaryFileName(testScene)))
	assert.Nil(t, err)
	var roundTrip model.MetadataSummary
	assert.Nil(t, json.Unmarshal(written, &roundTrip))
	assert.Equal(t, "OLI_TIRS", roundTrip.ImageAttributes.SensorID)
}

func TestExtractSceneMissingFieldIsNull(t *testing.T) {
	sceneDir := filepath.Join(t.TempDir(), testScene)
	assert.Nil(t, os.MkdirAll(sceneDir, 0755))
	attributes := fullImageAttributes()
	delete(attributes, "STATION_ID")
	writeTestDocument(t, sceneDir, attributes, fullProjection())

	summary, err := ExtractScene(sceneDir, &util.BasicLogContext{})
	assert.Nil(t, err, "%v", err)
	assert.NotNil(t, summary)
	assert.Nil(t, summary.ImageAttributes.StationID)

	written, err := os.ReadFile(filepath.Join(sceneDir, model.SummaryFileName(testScene)))
	assert.Nil(t, err, "summary document was not written despite missing field")
	var generic map[string]map[string]interface{}
	assert.Nil(t, json.Unmarshal(written, &generic))
	value, present := generic["image_attributes"]["station_id"]
	assert.True(t, present, "absent field was dropped instead of nulled")
	assert.Nil(t, value)
}

func TestExtractSceneMissingCoordinateSkipsPair(t *testing.T) {
	sceneDir := filepath.Join(t.TempDir(), testScene)
	assert.Nil(t, os.MkdirAll(sceneDir, 0755))
	projection := fullProjection()
	delete(projection, "CORNER_UR_LON_PRODUCT")
	writeTestDocument(t, sceneDir, fullImageAttributes(), projection)

	summary, err := ExtractScene(sceneDir, &util.BasicLogContext{})
	assert.Nil(t, err, "%v", err)
	assert.Len(t, summary.Coordinates, 6)
	_, present := summary.Coordinates["UR_lat"]
	assert.False(t, present, "half-missing corner pair was not skipped")
}

func TestExtractSceneNoDocument(t *testing.T) {
	sceneDir := filepath.Join(t.TempDir(), testScene)
	assert.Nil(t, os.MkdirAll(sceneDir, 0755))

	summary, err := ExtractScene(sceneDir, &util.BasicLogContext{})
	assert.Nil(t, err)
	assert.Nil(t, summary, "absent metadata document should yield no summary")
	_, statErr := os.Stat(filepath.Join(sceneDir, model.SummaryFileName(testScene)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFindMetadataDocumentNested(t *testing.T) {
	sceneDir := filepath.Join(t.TempDir(), testScene)
	nested := filepath.Join(sceneDir, "nested")
	assert.Nil(t, os.MkdirAll(nested, 0755))
	assert.Nil(t, os.WriteFile(filepath.Join(nested, testScene+"_MTL.json"), []byte("{}"), 0644))
	assert.Nil(t, os.WriteFile(filepath.Join(sceneDir, "unrelated.json"), []byte("{}"), 0644))

	found := FindMetadataDocument(sceneDir)
	assert.Equal(t, filepath.Join(nested, testScene+"_MTL.json"), found)
}
