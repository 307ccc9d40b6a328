package archive

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
	"github.com/stretchr/testify/assert"
)

func writeTestArchive(t *testing.T, path string, files map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	assert.Nil(t, err)
	defer out.Close()

	tarWriter := tar.NewWriter(out)
	defer tarWriter.Close()
	for name, contents := range files {
		assert.Nil(t, tarWriter.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(contents)),
			Typeflag: tar.TypeReg,
		}))
		_, err = tarWriter.Write([]byte(contents))
		assert.Nil(t, err)
	}
}

func TestExpandAll(t *testing.T) {
	root := t.TempDir()
	rawDataDir := filepath.Join(root, model.RawDataDir)
	assert.Nil(t, os.MkdirAll(rawDataDir, 0755))

	scene := "LC08_L2SP_093086_20230914_20230920_02_T1"
	writeTestArchive(t, filepath.Join(rawDataDir, scene+".tar"), map[string]string{
		scene + "_SR_B2.TIF": "blue band bytes",
		scene + "_MTL.json":  `{"LANDSAT_METADATA_FILE":{}}`,
	})

	assert.Nil(t, ExpandAll(root, &util.BasicLogContext{}))

	sceneDir := filepath.Join(rawDataDir, scene)
	contents, err := os.ReadFile(filepath.Join(sceneDir, scene+"_SR_B2.TIF"))
	assert.Nil(t, err)
	assert.Equal(t, "blue band bytes", string(contents))

	// The archive itself moves into the scene directory.
	_, err = os.Stat(filepath.Join(sceneDir, scene+".tar"))
	assert.Nil(t, err, "archive was not relocated")
	_, err = os.Stat(filepath.Join(rawDataDir, scene+".tar"))
	assert.True(t, os.IsNotExist(err), "archive still present at top level")
}

func TestExpandAllIdempotent(t *testing.T) {
	root := t.TempDir()
	rawDataDir := filepath.Join(root, model.RawDataDir)
	assert.Nil(t, os.MkdirAll(rawDataDir, 0755))

	scene := "LC09_L2SP_093086_20231002_20231005_02_T1"
	writeTestArchive(t, filepath.Join(rawDataDir, scene+".tar"), map[string]string{
		scene + "_SR_B3.TIF": "green band bytes",
	})

	ctx := &util.BasicLogContext{}
	assert.Nil(t, ExpandAll(root, ctx))

	// An unrelated file already in the destination must survive a rerun.
	keepsake := filepath.Join(rawDataDir, scene, "existing.txt")
	assert.Nil(t, os.WriteFile(keepsake, []byte("keep me"), 0644))

	assert.Nil(t, ExpandAll(root, ctx))

	contents, err := os.ReadFile(keepsake)
	assert.Nil(t, err)
	assert.Equal(t, "keep me", string(contents))
	_, err = os.Stat(filepath.Join(rawDataDir, scene, scene+"_SR_B3.TIF"))
	assert.Nil(t, err)
}

func TestExpandAllBadArchiveContinues(t *testing.T) {
	root := t.TempDir()
	rawDataDir := filepath.Join(root, model.RawDataDir)
	assert.Nil(t, os.MkdirAll(rawDataDir, 0755))

	assert.Nil(t, os.WriteFile(filepath.Join(rawDataDir, "broken.tar"), []byte("not a tar"), 0644))
	good := "LC08_L2SP_090085_20230801_20230805_02_T1"
	writeTestArchive(t, filepath.Join(rawDataDir, good+".tar"), map[string]string{
		good + "_SR_B4.TIF": "red band bytes",
	})

	assert.Nil(t, ExpandAll(root, &util.BasicLogContext{}))
	_, err := os.Stat(filepath.Join(rawDataDir, good, good+"_SR_B4.TIF"))
	assert.Nil(t, err, "good archive was not expanded after bad archive failure")
}

func TestSceneNameForArchive(t *testing.T) {
	assert.Equal(t, "scene", sceneNameForArchive("scene.tar"))
	assert.Equal(t, "scene", sceneNameForArchive("scene.tar.gz"))
	assert.Equal(t, "scene", sceneNameForArchive("scene.tgz"))
}
