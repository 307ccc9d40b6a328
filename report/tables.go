package report

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
)

const (
	tableRowHeight = 28.0
	tableMargin    = 20.0
	jpegQuality    = 90
)

// imageAttributeOrder fixes the display order of the acquisition fields,
// matching the field order of the summary document
var imageAttributeOrder = []struct {
	Key   string
	Value func(model.ImageAttributes) interface{}
}{
	{"spacecraft_id", func(a model.ImageAttributes) interface{} { return a.SpacecraftID }},
	{"sensor_id", func(a model.ImageAttributes) interface{} { return a.SensorID }},
	{"station_id", func(a model.ImageAttributes) interface{} { return a.StationID }},
	{"date_acquired", func(a model.ImageAttributes) interface{} { return a.DateAcquired }},
	{"time_acquired", func(a model.ImageAttributes) interface{} { return a.TimeAcquired }},
	{"wrs_type", func(a model.ImageAttributes) interface{} { return a.WRSType }},
	{"wrs_path", func(a model.ImageAttributes) interface{} { return a.WRSPath }},
	{"wrs_row", func(a model.ImageAttributes) interface{} { return a.WRSRow }},
	{"image_quality", func(a model.ImageAttributes) interface{} { return a.ImageQuality }},
	{"cloud_cover", func(a model.ImageAttributes) interface{} { return a.CloudCover }},
	{"cloud_cover_land", func(a model.ImageAttributes) interface{} { return a.CloudCoverLand }},
	{"sun_azimuth", func(a model.ImageAttributes) interface{} { return a.SunAzimuth }},
	{"sun_elevation", func(a model.ImageAttributes) interface{} { return a.SunElevation }},
	{"earth_sun_distance", func(a model.ImageAttributes) interface{} { return a.EarthSunDistance }},
}

var coordinateOrder = []string{
	"UL_lat", "UL_lon", "UR_lat", "UR_lon",
	"LL_lat", "LL_lon", "LR_lat", "LR_lon",
}

// RenderSummaryTable draws the extracted metadata summary as a two-section
// table image. A summary with no populated fields is reported and produces
// no image at all.
func RenderSummaryTable(summary model.MetadataSummary, outputPath string, ctx util.LogContext) error {
	rows := summaryRows(summary)
	if len(rows) == 0 {
		util.LogAlert(ctx, "No metadata attributes to summarize, skipping "+filepath.Base(outputPath))
		return nil
	}

	height := int(2*tableMargin) + tablePixelHeight(len(rows))
	dc := gg.NewContext(620, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	drawTable(dc, tableMargin, tableMargin, rows, []float64{280, 300})
	return saveJPEG(dc.Image(), outputPath)
}

func summaryRows(summary model.MetadataSummary) [][]string {
	var rows [][]string

	var attributeRows [][]string
	for _, field := range imageAttributeOrder {
		value := field.Value(summary.ImageAttributes)
		if value == nil {
			continue
		}
		attributeRows = append(attributeRows, []string{field.Key, formatCell(value)})
	}
	if len(attributeRows) > 0 {
		rows = append(rows, []string{"Image Attributes", ""})
		rows = append(rows, attributeRows...)
	}

	var coordinateRows [][]string
	for _, key := range coordinateOrder {
		value, ok := summary.Coordinates[key]
		if !ok {
			continue
		}
		coordinateRows = append(coordinateRows, []string{key, fmt.Sprintf("%.5f", value)})
	}
	if len(coordinateRows) > 0 {
		rows = append(rows, []string{"Coordinates", ""})
		rows = append(rows, coordinateRows...)
	}
	return rows
}

func formatCell(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func tablePixelHeight(rowCount int) int {
	return int(float64(rowCount)*tableRowHeight + tableMargin)
}

// drawTable renders rows as a bordered grid at (x, y). A row whose second
// cell is empty is treated as a section header and shaded.
func drawTable(dc *gg.Context, x, y float64, rows [][]string, colWidths []float64) {
	totalWidth := 0.0
	for _, w := range colWidths {
		totalWidth += w
	}

	for i, row := range rows {
		rowTop := y + float64(i)*tableRowHeight
		if row[len(row)-1] == "" && len(row) > 1 {
			dc.SetRGB(0.85, 0.88, 0.92)
			dc.DrawRectangle(x, rowTop, totalWidth, tableRowHeight)
			dc.Fill()
		}

		cellX := x
		for col, cell := range row {
			dc.SetRGB(0.4, 0.4, 0.4)
			dc.SetLineWidth(1)
			dc.DrawRectangle(cellX, rowTop, colWidths[col], tableRowHeight)
			dc.Stroke()

			dc.SetRGB(0, 0, 0)
			dc.DrawStringAnchored(cell, cellX+8, rowTop+tableRowHeight/2, 0, 0.35)
			cellX += colWidths[col]
		}
	}
}

func saveJPEG(img image.Image, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality})
}
