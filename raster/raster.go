// Package raster wraps the GDAL band-level read and GeoTIFF write
// primitives the pipeline needs. Everything here is plain windowed I/O;
// unit conversion and compositing live with their stages.
package raster

import (
	"fmt"

	"github.com/lukeroth/gdal"
)

// Grid is a full single-band read: row-major samples with dimensions
type Grid struct {
	Width  int
	Height int
	Data   []float64
}

// At returns the sample at (row y, col x)
func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

// Max returns the largest sample in the grid, 0 for an empty grid
func (g *Grid) Max() float64 {
	max := 0.0
	for _, v := range g.Data {
		if v > max {
			max = v
		}
	}
	return max
}

// ReadPixel opens a single-band raster and reads the digital number at
// (row y, col x)
func ReadPixel(path string, x, y int) (float64, error) {
	dataset, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return 0, err
	}
	defer dataset.Close()

	band := dataset.RasterBand(1)
	if x < 0 || y < 0 || x >= band.XSize() || y >= band.YSize() {
		return 0, fmt.Errorf("pixel (%d, %d) outside raster %dx%d", x, y, band.XSize(), band.YSize())
	}

	buffer := make([]float64, 1)
	if err := band.IO(gdal.Read, x, y, 1, 1, buffer, 1, 1, 0, 0); err != nil {
		return 0, err
	}
	return buffer[0], nil
}

// ReadBandGrid reads an entire single-band raster into a Grid
func ReadBandGrid(path string) (*Grid, error) {
	dataset, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer dataset.Close()

	band := dataset.RasterBand(1)
	width, height := band.XSize(), band.YSize()
	data := make([]float64, width*height)
	if err := band.IO(gdal.Read, 0, 0, width, height, data, width, height, 0, 0); err != nil {
		return nil, err
	}
	return &Grid{Width: width, Height: height, Data: data}, nil
}

// RGB is an 8-bit three-channel image in channel-separate planes
type RGB struct {
	Width  int
	Height int
	R      []uint8
	G      []uint8
	B      []uint8
}

// At returns the channel values at (row y, col x)
func (img *RGB) At(x, y int) (r, g, b uint8) {
	i := y*img.Width + x
	return img.R[i], img.G[i], img.B[i]
}

// ReadRGB reads a 3-band byte raster into channel-separate planes
func ReadRGB(path string) (*RGB, error) {
	dataset, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer dataset.Close()

	if dataset.RasterCount() < 3 {
		return nil, fmt.Errorf("raster %s has %d bands, need 3", path, dataset.RasterCount())
	}

	width, height := dataset.RasterXSize(), dataset.RasterYSize()
	img := &RGB{
		Width:  width,
		Height: height,
		R:      make([]uint8, width*height),
		G:      make([]uint8, width*height),
		B:      make([]uint8, width*height),
	}
	for i, plane := range [][]uint8{img.R, img.G, img.B} {
		band := dataset.RasterBand(i + 1)
		if err := band.IO(gdal.Read, 0, 0, width, height, plane, width, height, 0, 0); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// WriteRGBGeoTIFF writes the image as a 3-band byte GeoTIFF with the given
// affine geotransform, projected as geographic WGS84
func WriteRGBGeoTIFF(path string, img *RGB, transform [6]float64) error {
	driver, err := gdal.GetDriverByName("GTiff")
	if err != nil {
		return err
	}

	dataset := driver.Create(path, img.Width, img.Height, 3, gdal.Byte, nil)
	defer dataset.Close()

	if err := dataset.SetGeoTransform(transform); err != nil {
		return err
	}
	srs := gdal.CreateSpatialReference("")
	if err := srs.FromEPSG(4326); err != nil {
		return err
	}
	wkt, err := srs.ToWKT()
	if err != nil {
		return err
	}
	if err := dataset.SetProjection(wkt); err != nil {
		return err
	}

	for i, plane := range [][]uint8{img.R, img.G, img.B} {
		band := dataset.RasterBand(i + 1)
		if err := band.IO(gdal.Write, 0, 0, img.Width, img.Height, plane, img.Width, img.Height, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

// GeoTransformFromBounds builds the affine transform mapping pixel space to
// the geographic bounding box (west/north origin, north-up)
func GeoTransformFromBounds(west, south, east, north float64, width, height int) [6]float64 {
	pixelWidth := (east - west) / float64(width)
	pixelHeight := (north - south) / float64(height)
	return [6]float64{west, pixelWidth, 0, north, 0, -pixelHeight}
}
