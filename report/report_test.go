package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
)

func TestFlattenDocumentPreservesKeyOrder(t *testing.T) {
	doc := `{"A":{"x":1,"y":2},"B":{"z":3}}`
	rows, err := FlattenDocument(strings.NewReader(doc))
	assert.NoError(t, err)
	assert.Equal(t, [][]string{
		{"A", ""},
		{"    x", "1"},
		{"    y", "2"},
		{"", ""},
		{"B", ""},
		{"    z", "3"},
		{"", ""},
	}, rows)
}

func TestFlattenDocumentScalars(t *testing.T) {
	doc := `{"s":{"str":"hello","num":1.25,"flag":true,"missing":null}}`
	rows, err := FlattenDocument(strings.NewReader(doc))
	assert.NoError(t, err)
	assert.Equal(t, []string{"    str", "hello"}, rows[1])
	assert.Equal(t, []string{"    num", "1.25"}, rows[2])
	assert.Equal(t, []string{"    flag", "true"}, rows[3])
	assert.Equal(t, []string{"    missing", ""}, rows[4])
}

func TestFlattenDocumentRejectsDeepNesting(t *testing.T) {
	doc := `{"A":{"x":{"deep":1}}}`
	_, err := FlattenDocument(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestRenderSummaryTableEmptyWritesNothing(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "summary_scene.jpg")
	err := RenderSummaryTable(model.MetadataSummary{}, outputPath, &util.BasicLogContext{})
	assert.NoError(t, err)
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderSummaryTableWritesImage(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "summary_scene.jpg")
	summary := model.MetadataSummary{
		ImageAttributes: model.ImageAttributes{SpacecraftID: "LANDSAT_8", CloudCover: 12.5},
		Coordinates:     model.Coordinates{"UL_lat": -32.1, "UL_lon": 151.0},
	}
	assert.NoError(t, RenderSummaryTable(summary, outputPath, &util.BasicLogContext{}))
	info, err := os.Stat(outputPath)
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestChartBandLabels(t *testing.T) {
	expected := []string{
		"B1 - Coastal aerosol", "B2 - Blue", "B3 - Green",
		"B4 - Red", "B5 - NIR", "B6 - SWIR 1", "B7 - SWIR 2",
	}
	assert.Len(t, reflectanceBandInfo, len(expected))
	for i, info := range reflectanceBandInfo {
		assert.Equal(t, expected[i], info.Label)
	}
	assert.Equal(t, "B10 - Thermal Infrared 1", thermalBandInfo.Label)
}

func TestRenderChartWithMissingBands(t *testing.T) {
	reflectance := 0.137
	kelvin := 295.97
	celsius := 22.82
	record := model.SampleRecord{
		"B2":  model.BandSample{Reflectance: &reflectance},
		"B4":  model.BandSample{Err: "no such file"},
		"B10": model.BandSample{TemperatureK: &kelvin, TemperatureC: &celsius},
	}
	outputPath := filepath.Join(t.TempDir(), "surface_reflectance_scene.jpg")
	assert.NoError(t, RenderChart(record, outputPath))
	info, err := os.Stat(outputPath)
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderSceneProducesArtifacts(t *testing.T) {
	root := t.TempDir()
	sceneName := "LC08_L2SP_093086_20230914_20230920_02_T1"
	sceneDir := filepath.Join(root, model.RawDataDir, sceneName)
	resultDir := filepath.Join(root, model.ResultsDir, sceneName)
	assert.NoError(t, os.MkdirAll(sceneDir, 0755))

	summary := `{"image_attributes":{"spacecraft_id":"LANDSAT_8","cloud_cover":3.14},"coordinates":{"UL_lat":-32.1}}`
	assert.NoError(t, os.WriteFile(filepath.Join(sceneDir, model.SummaryFileName(sceneName)), []byte(summary), 0644))
	samples := `{"B2":{"Surface Reflectance":0.1},"B10":{"Surface Temperature (K)":295.97,"Surface Temperature (Celcius)":22.82}}`
	assert.NoError(t, os.WriteFile(filepath.Join(sceneDir, model.SampleFileName(sceneName)), []byte(samples), 0644))

	ctx := &util.BasicLogContext{}
	assert.NoError(t, RenderScene(sceneDir, resultDir, ctx))

	for _, name := range []string{
		model.ChartFileName(sceneName),
		model.SummaryImageFileName(sceneName),
		model.CSVFileName(sceneName),
	} {
		_, err := os.Stat(filepath.Join(resultDir, name))
		assert.NoError(t, err, name)
	}
}
