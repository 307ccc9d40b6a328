package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridAtAndMax(t *testing.T) {
	grid := &Grid{Width: 3, Height: 2, Data: []float64{1, 2, 3, 4, 9, 6}}
	assert.Equal(t, 3.0, grid.At(2, 0))
	assert.Equal(t, 9.0, grid.At(1, 1))
	assert.Equal(t, 9.0, grid.Max())

	empty := &Grid{}
	assert.Equal(t, 0.0, empty.Max())
}

func TestGeoTransformFromBounds(t *testing.T) {
	transform := GeoTransformFromBounds(144.0, -39.0, 146.0, -37.0, 200, 100)
	assert.InDelta(t, 144.0, transform[0], 1e-12)  // west origin
	assert.InDelta(t, 0.01, transform[1], 1e-12)   // pixel width
	assert.InDelta(t, -37.0, transform[3], 1e-12)  // north origin
	assert.InDelta(t, -0.02, transform[5], 1e-12)  // negative pixel height
	assert.Equal(t, 0.0, transform[2])
	assert.Equal(t, 0.0, transform[4])
}
