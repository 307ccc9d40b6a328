package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
)

// RenderAll produces the reporting artifacts for every scene under raw_data.
// A failure on one scene is reported and does not stop the others.
func RenderAll(rootDirectory string, ctx util.LogContext) error {
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
		resultDir := filepath.Join(rootDirectory, model.ResultsDir, entry.Name())
		if err := RenderScene(sceneDir, resultDir, ctx); err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Reporting failed for %s: %v", entry.Name(), err))
		}
	}
	return nil
}

// RenderScene writes the reflectance chart, the summary table image and the
// flattened CSV for one scene. Artifacts whose input document is missing are
// skipped with a notice, not treated as failures.
func RenderScene(sceneDir, resultDir string, ctx util.LogContext) error {
	sceneName := filepath.Base(sceneDir)
	if err := os.MkdirAll(resultDir, 0755); err != nil {
		return err
	}

	samplePath := filepath.Join(sceneDir, model.SampleFileName(sceneName))
	if record, err := readSamples(samplePath); err != nil {
		util.LogInfo(ctx, fmt.Sprintf("No sample document for %s, skipping chart: %v", sceneName, err))
	} else {
		chartPath := filepath.Join(resultDir, model.ChartFileName(sceneName))
		if err = RenderChart(record, chartPath); err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
		util.LogInfo(ctx, "Chart saved to "+chartPath)
	}

	summaryPath := filepath.Join(sceneDir, model.SummaryFileName(sceneName))
	payload, err := os.ReadFile(summaryPath)
	if err != nil {
		util.LogInfo(ctx, fmt.Sprintf("No summary document for %s, skipping table and CSV: %v", sceneName, err))
		return nil
	}

	var summary model.MetadataSummary
	if err = json.Unmarshal(payload, &summary); err != nil {
		return fmt.Errorf("parsing summary document: %w", err)
	}
	tablePath := filepath.Join(resultDir, model.SummaryImageFileName(sceneName))
	if err = RenderSummaryTable(summary, tablePath, ctx); err != nil {
		return fmt.Errorf("rendering summary table: %w", err)
	}

	rows, err := FlattenDocument(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("flattening summary document: %w", err)
	}
	csvPath := filepath.Join(resultDir, model.CSVFileName(sceneName))
	if err = WriteCSV(csvPath, rows); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	util.LogInfo(ctx, "CSV saved to "+csvPath)
	return nil
}

func readSamples(path string) (model.SampleRecord, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var record model.SampleRecord
	if err = json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return record, nil
}
