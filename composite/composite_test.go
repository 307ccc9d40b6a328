package composite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angelinath21/Reflectra/raster"
)

func gridOf(width, height int, values ...float64) raster.Grid {
	return raster.Grid{Width: width, Height: height, Data: values}
}

func TestStackAndScaleNormalizesAgainstGlobalMax(t *testing.T) {
	red := gridOf(2, 1, 50, 100)
	green := gridOf(2, 1, 100, 0)
	blue := gridOf(2, 1, 25, 50)

	img, err := stackAndScale(red, green, blue)
	assert.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.InDelta(t, 127, float64(img.R[0]), 1)
	assert.Equal(t, uint8(255), img.R[1])
	assert.Equal(t, uint8(255), img.G[0])
	assert.InDelta(t, 63, float64(img.B[0]), 1)
}

func TestStackAndScaleAllZeroIsBlack(t *testing.T) {
	zero := gridOf(2, 2, 0, 0, 0, 0)
	img, err := stackAndScale(zero, zero, zero)
	assert.NoError(t, err)
	for i := range img.R {
		assert.Equal(t, uint8(0), img.R[i])
		assert.Equal(t, uint8(0), img.G[i])
		assert.Equal(t, uint8(0), img.B[i])
	}
}

func TestStackAndScaleDimensionMismatch(t *testing.T) {
	_, err := stackAndScale(gridOf(2, 1, 1, 2), gridOf(1, 1, 1), gridOf(2, 1, 1, 2))
	assert.Error(t, err)
}

func TestReadBBox(t *testing.T) {
	dir := t.TempDir()
	stacPath := filepath.Join(dir, "scene_SR_stac.json")
	payload := `{"type":"Feature","bbox":[151.0,-34.2,153.3,-32.1],"properties":{}}`
	assert.NoError(t, os.WriteFile(stacPath, []byte(payload), 0644))

	bbox, err := readBBox(stacPath)
	assert.NoError(t, err)
	assert.Equal(t, []float64{151.0, -34.2, 153.3, -32.1}, bbox)
}

func TestReadBBoxMissing(t *testing.T) {
	dir := t.TempDir()
	stacPath := filepath.Join(dir, "scene_SR_stac.json")
	assert.NoError(t, os.WriteFile(stacPath, []byte(`{"type":"Feature"}`), 0644))
	_, err := readBBox(stacPath)
	assert.Error(t, err)
}

func TestLocateInputsReportsMissingBand(t *testing.T) {
	dir := t.TempDir()
	sceneDir := filepath.Join(dir, "LC08_L2SP_093086_20230914_20230920_02_T1")
	assert.NoError(t, os.MkdirAll(sceneDir, 0755))
	stacName := "LC08_L2SP_093086_20230914_20230920_02_T1_SR_stac.json"
	assert.NoError(t, os.WriteFile(filepath.Join(sceneDir, stacName), []byte(`{"bbox":[0,0,1,1]}`), 0644))

	_, err := locateInputs(sceneDir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing band raster")
}
