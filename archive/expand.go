package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
)

// ExpandAll unpacks every archive directly inside the raw-data directory
// into a same-named per-scene directory, then relocates the archive into
// that directory. Idempotent: an existing destination directory is reused
// and its contents are not purged. A per-archive failure is logged and does
// not halt the remaining archives.
func ExpandAll(rootDirectory string, ctx util.LogContext) error {
	rawDataDir := filepath.Join(rootDirectory, model.RawDataDir)
	entries, err := os.ReadDir(rawDataDir)
	if err != nil {
		return util.LogSimpleErr(ctx, "Failed to list raw-data directory "+rawDataDir+".", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isArchiveName(entry.Name()) {
			continue
		}
		archivePath := filepath.Join(rawDataDir, entry.Name())
		destDir := filepath.Join(rawDataDir, sceneNameForArchive(entry.Name()))

		util.LogInfo(ctx, fmt.Sprintf("Extracting %s into %s...", entry.Name(), destDir))
		if err := expandOne(archivePath, destDir); err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Error extracting %s: %v", entry.Name(), err))
			continue
		}
		if err := os.Rename(archivePath, filepath.Join(destDir, entry.Name())); err != nil {
			util.LogAlert(ctx, fmt.Sprintf("Error moving %s into %s: %v", entry.Name(), destDir, err))
			continue
		}
		util.LogInfo(ctx, fmt.Sprintf("%s extracted successfully into %s.", entry.Name(), destDir))
	}
	return nil
}

func isArchiveName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".tar") || strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz")
}

// sceneNameForArchive strips the archive suffix to get the scene directory name
func sceneNameForArchive(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"):
		return name[:len(name)-len(".tar.gz")]
	case strings.HasSuffix(lower, ".tgz"):
		return name[:len(name)-len(".tgz")]
	default:
		return name[:len(name)-len(".tar")]
	}
}

func expandOne(archivePath, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	var mainReader io.Reader = file
	lower := strings.ToLower(archivePath)
	if strings.HasSuffix(lower, ".gz") || strings.HasSuffix(lower, ".tgz") {
		gzipReader, zipErr := gzip.NewReader(mainReader)
		if zipErr != nil {
			return zipErr
		}
		defer gzipReader.Close()
		mainReader = gzipReader
	}

	tarReader := tar.NewReader(mainReader)
	for {
		header, readErr := tarReader.Next()
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
		if err := writeEntry(tarReader, header, destDir); err != nil {
			return err
		}
	}
}

func writeEntry(tarReader *tar.Reader, header *tar.Header, destDir string) error {
	cleanName := filepath.Clean(header.Name)
	if strings.HasPrefix(cleanName, "..") || filepath.IsAbs(cleanName) {
		return fmt.Errorf("archive entry escapes destination: %s", header.Name)
	}
	destPath := filepath.Join(destDir, cleanName)

	switch header.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(destPath, 0755)
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		out, err := os.Create(destPath)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = io.Copy(out, tarReader)
		return err
	default:
		// Symlinks and specials are not part of provider bundles; skip them.
		return nil
	}
}
