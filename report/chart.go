package report

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/angelinath21/Reflectra/model"
)

// bandInfo describes the spectral placement of one instrument band. The
// wavelength bounds are the published OLI/TIRS band edges in micrometers.
type bandInfo struct {
	ID    string
	Label string
	Low   float64
	High  float64
}

var reflectanceBandInfo = []bandInfo{
	{"B1", "B1 - Coastal aerosol", 0.43, 0.45},
	{"B2", "B2 - Blue", 0.45, 0.51},
	{"B3", "B3 - Green", 0.53, 0.59},
	{"B4", "B4 - Red", 0.64, 0.67},
	{"B5", "B5 - NIR", 0.85, 0.88},
	{"B6", "B6 - SWIR 1", 1.57, 1.65},
	{"B7", "B7 - SWIR 2", 2.11, 2.29},
}

var thermalBandInfo = bandInfo{"B10", "B10 - Thermal Infrared 1", 10.60, 11.19}

const (
	chartWidthPx  = 900
	chartHeightPx = 420
)

// RenderChart plots surface reflectance against band center wavelength and
// appends a per-band value table, writing the combined figure as a JPEG.
// Bands whose sample failed appear in the table as N/A and are left off the
// curve.
func RenderChart(record model.SampleRecord, outputPath string) error {
	spectrum, err := renderSpectrum(record)
	if err != nil {
		return err
	}

	rows := [][]string{{"Band", "Wavelength (um)", "Value"}}
	for _, info := range reflectanceBandInfo {
		rows = append(rows, []string{info.Label, wavelengthRange(info), reflectanceCell(record[info.ID])})
	}
	rows = append(rows, []string{thermalBandInfo.Label, wavelengthRange(thermalBandInfo), temperatureCell(record[thermalBandInfo.ID])})

	tableHeight := tablePixelHeight(len(rows))
	dc := gg.NewContext(chartWidthPx, chartHeightPx+tableHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(spectrum, 0, 0)
	drawTable(dc, tableMargin, chartHeightPx, rows, []float64{320, 240, 280})
	return saveJPEG(dc.Image(), outputPath)
}

// renderSpectrum draws the reflectance curve itself
func renderSpectrum(record model.SampleRecord) (image.Image, error) {
	points := plotter.XYs{}
	for _, info := range reflectanceBandInfo {
		sample := record[info.ID]
		if sample.Reflectance == nil {
			continue
		}
		points = append(points, plotter.XY{X: (info.Low + info.High) / 2, Y: *sample.Reflectance})
	}

	p := plot.New()
	p.Title.Text = "Surface Reflectance"
	p.X.Label.Text = "Wavelength (um)"
	p.Y.Label.Text = "Surface Reflectance"

	p.Add(plotter.NewGrid())
	if len(points) > 0 {
		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			return nil, fmt.Errorf("building reflectance plot: %w", err)
		}
		p.Add(line, scatter)
	}

	canvas := vgimg.New(vg.Length(chartWidthPx)*vg.Inch/vgimg.DefaultDPI, vg.Length(chartHeightPx)*vg.Inch/vgimg.DefaultDPI)
	p.Draw(draw.New(canvas))
	return canvas.Image(), nil
}

func wavelengthRange(info bandInfo) string {
	return fmt.Sprintf("%.2f - %.2f", info.Low, info.High)
}

func reflectanceCell(sample model.BandSample) string {
	if sample.Reflectance == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.6f", *sample.Reflectance)
}

func temperatureCell(sample model.BandSample) string {
	if sample.TemperatureK == nil || sample.TemperatureC == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f K / %.2f C", *sample.TemperatureK, *sample.TemperatureC)
}
