package dashboard

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/angelinath21/Reflectra/model"
)

// requiredArtifacts lists the result files a completed scene must carry
// before it can be bundled
func requiredArtifacts(sceneName string) []string {
	return []string{
		model.CompositeFileName(sceneName),
		model.ChartFileName(sceneName),
		model.SummaryImageFileName(sceneName),
		model.CSVFileName(sceneName),
	}
}

// missingArtifacts returns the required artifacts absent from resultDir
func missingArtifacts(resultDir, sceneName string) []string {
	var missing []string
	for _, name := range requiredArtifacts(sceneName) {
		if _, err := os.Stat(filepath.Join(resultDir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// writeBundle streams a zip of all required artifacts. Callers check
// missingArtifacts first; a file that disappears mid-stream aborts the
// archive.
func writeBundle(w io.Writer, resultDir, sceneName string) error {
	archive := zip.NewWriter(w)
	for _, name := range requiredArtifacts(sceneName) {
		source, err := os.Open(filepath.Join(resultDir, name))
		if err != nil {
			archive.Close()
			return err
		}
		entry, err := archive.Create(name)
		if err != nil {
			source.Close()
			archive.Close()
			return err
		}
		if _, err = io.Copy(entry, source); err != nil {
			source.Close()
			archive.Close()
			return err
		}
		source.Close()
	}
	return archive.Close()
}
