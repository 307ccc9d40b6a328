package composite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/raster"
	"github.com/angelinath21/Reflectra/util"
)

// stacItem is the slice of a STAC item document the compositor needs. The
// bbox is [west, south, east, north] in WGS84 degrees.
type stacItem struct {
	BBox []float64 `json:"bbox"`
}

type sceneInputs struct {
	stacPath  string
	bandPaths map[string]string
}

// rgbBands maps output color planes to the source bands, natural color
var rgbBands = [3]string{"B4", "B3", "B2"}

// ComposeAll builds a georeferenced true-color composite for every scene
// under raw_data that carries a STAC item and the three visible bands. Scenes
// missing any input are reported and skipped.
func ComposeAll(rootDirectory string, ctx util.LogContext) error {
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
		if err := ComposeScene(sceneDir, rootDirectory, ctx); err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Skipping composite for %s: %v", entry.Name(), err))
		}
	}
	return nil
}

// ComposeScene stacks B4/B3/B2 into a byte-scaled RGB GeoTIFF under
// results/<scene>/
func ComposeScene(sceneDir, rootDirectory string, ctx util.LogContext) error {
	sceneName := filepath.Base(sceneDir)
	inputs, err := locateInputs(sceneDir)
	if err != nil {
		return err
	}

	bbox, err := readBBox(inputs.stacPath)
	if err != nil {
		return err
	}

	grids := make(map[string]raster.Grid, len(rgbBands))
	for _, band := range rgbBands {
		grid, err := raster.ReadBandGrid(inputs.bandPaths[band])
		if err != nil {
			return fmt.Errorf("reading %s: %w", band, err)
		}
		grids[band] = *grid
	}

	img, err := stackAndScale(grids[rgbBands[0]], grids[rgbBands[1]], grids[rgbBands[2]])
	if err != nil {
		return err
	}

	resultDir := filepath.Join(rootDirectory, model.ResultsDir, sceneName)
	if err = os.MkdirAll(resultDir, 0755); err != nil {
		return err
	}

	transform := raster.GeoTransformFromBounds(bbox[0], bbox[1], bbox[2], bbox[3], img.Width, img.Height)
	outputPath := filepath.Join(resultDir, model.CompositeFileName(sceneName))
	if err = raster.WriteRGBGeoTIFF(outputPath, &img, transform); err != nil {
		return err
	}
	util.LogInfo(ctx, "Stacked image saved to "+outputPath)
	return nil
}

// locateInputs finds the STAC item and the three visible band rasters for a
// scene directory, reporting the first missing piece
func locateInputs(sceneDir string) (sceneInputs, error) {
	sceneName := filepath.Base(sceneDir)
	inputs := sceneInputs{bandPaths: map[string]string{}}

	entries, err := os.ReadDir(sceneDir)
	if err != nil {
		return inputs, err
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), model.STACSuffix) {
			inputs.stacPath = filepath.Join(sceneDir, entry.Name())
		}
	}
	if inputs.stacPath == "" {
		return inputs, fmt.Errorf("no STAC item found in %s", sceneDir)
	}

	for _, band := range rgbBands {
		bandPath := filepath.Join(sceneDir, model.BandFileName(sceneName, band))
		if _, err := os.Stat(bandPath); err != nil {
			return inputs, fmt.Errorf("missing band raster %s", filepath.Base(bandPath))
		}
		inputs.bandPaths[band] = bandPath
	}
	return inputs, nil
}

func readBBox(stacPath string) ([]float64, error) {
	payload, err := os.ReadFile(stacPath)
	if err != nil {
		return nil, err
	}
	var item stacItem
	if err = json.Unmarshal(payload, &item); err != nil {
		return nil, fmt.Errorf("parsing STAC item %s: %w", filepath.Base(stacPath), err)
	}
	if len(item.BBox) != 4 {
		return nil, fmt.Errorf("STAC item %s has no usable bbox", filepath.Base(stacPath))
	}
	return item.BBox, nil
}

// stackAndScale normalizes the three band grids against the global maximum
// and packs them into an 8-bit RGB image. An all-zero stack produces a black
// image rather than dividing by zero.
func stackAndScale(red, green, blue raster.Grid) (raster.RGB, error) {
	if red.Width != green.Width || red.Width != blue.Width ||
		red.Height != green.Height || red.Height != blue.Height {
		return raster.RGB{}, fmt.Errorf("band dimensions differ: %dx%d, %dx%d, %dx%d",
			red.Width, red.Height, green.Width, green.Height, blue.Width, blue.Height)
	}

	maxValue := red.Max()
	if green.Max() > maxValue {
		maxValue = green.Max()
	}
	if blue.Max() > maxValue {
		maxValue = blue.Max()
	}

	img := raster.RGB{
		Width:  red.Width,
		Height: red.Height,
		R:      make([]uint8, len(red.Data)),
		G:      make([]uint8, len(green.Data)),
		B:      make([]uint8, len(blue.Data)),
	}
	if maxValue == 0 {
		return img, nil
	}
	for i := range red.Data {
		img.R[i] = uint8(red.Data[i] / maxValue * 255)
		img.G[i] = uint8(green.Data[i] / maxValue * 255)
		img.B[i] = uint8(blue.Data[i] / maxValue * 255)
	}
	return img, nil
}
