package dashboard

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/angelinath21/Reflectra/raster"
)

// maxDisplayWidth caps the preview width; images already smaller than twice
// the cap are still halved so the picker has room around them
const maxDisplayWidth = 600.0

// pixelCell is one neighborhood sample sent to the picker
type pixelCell struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// pixelInfo is the picker response for one clicked pixel
type pixelInfo struct {
	Scene  string          `json:"scene"`
	X      int             `json:"x"`
	Y      int             `json:"y"`
	Center pixelCell       `json:"center"`
	Grid   [3][3]pixelCell `json:"grid"`
}

// displayRatio returns the preview scale factor for a native image width
func displayRatio(width int) float64 {
	ratio := maxDisplayWidth / float64(width)
	if ratio > 0.5 {
		ratio = 0.5
	}
	return ratio
}

// scaleRGB resamples the image by ratio using nearest neighbor
func scaleRGB(img *raster.RGB, ratio float64) *image.RGBA {
	outWidth := int(float64(img.Width) * ratio)
	outHeight := int(float64(img.Height) * ratio)
	if outWidth < 1 {
		outWidth = 1
	}
	if outHeight < 1 {
		outHeight = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, outWidth, outHeight))
	for y := 0; y < outHeight; y++ {
		srcY := int(float64(y) / ratio)
		if srcY >= img.Height {
			srcY = img.Height - 1
		}
		for x := 0; x < outWidth; x++ {
			srcX := int(float64(x) / ratio)
			if srcX >= img.Width {
				srcX = img.Width - 1
			}
			r, g, b := img.At(srcX, srcY)
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}

// extractGrid samples the 3x3 neighborhood centered at (x, y). Neighbors
// outside the image come back black.
func extractGrid(img *raster.RGB, x, y int) [3][3]pixelCell {
	var grid [3][3]pixelCell
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sampleX := x + col - 1
			sampleY := y + row - 1
			if sampleX < 0 || sampleY < 0 || sampleX >= img.Width || sampleY >= img.Height {
				continue
			}
			r, g, b := img.At(sampleX, sampleY)
			grid[row][col] = pixelCell{R: r, G: g, B: b}
		}
	}
	return grid
}

const gridBlockPx = 50

// renderGrid draws the 3x3 neighborhood as color blocks with the clicked
// center outlined in white
func renderGrid(grid [3][3]pixelCell) image.Image {
	dc := gg.NewContext(3*gridBlockPx, 3*gridBlockPx)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			cell := grid[row][col]
			dc.SetRGB255(int(cell.R), int(cell.G), int(cell.B))
			dc.DrawRectangle(float64(col*gridBlockPx), float64(row*gridBlockPx), gridBlockPx, gridBlockPx)
			dc.Fill()
		}
	}
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(3)
	dc.DrawRectangle(gridBlockPx, gridBlockPx, gridBlockPx, gridBlockPx)
	dc.Stroke()
	return dc.Image()
}
