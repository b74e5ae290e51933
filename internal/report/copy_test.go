package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(base, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return base
}

func TestCopyCSVs_LastWins(t *testing.T) {
	t.Parallel()

	src := writeTree(t, map[string]string{
		"a/x.csv":    "A",
		"b/y.csv":    "B",
		"readme.txt": "ignored",
		"z.CSV":      "case matters",
	})
	destDir := t.TempDir()
	dest := filepath.Join(destDir, "data.csv")

	r := New(Options{}, WithOutput(&bytes.Buffer{}))
	got, err := r.CopyCSVs(src, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "B", string(data))

	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestCopyCSVs_Single(t *testing.T) {
	t.Parallel()

	src := writeTree(t, map[string]string{"deep/er/data.csv": "a,b\n1,2\n"})
	dest := filepath.Join(t.TempDir(), "out.csv")

	r := New(Options{})
	_, err := r.CopyCSVs(src, dest)
	require.NoError(t, err)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestCopyCSVs_NoneFound(t *testing.T) {
	t.Parallel()

	src := writeTree(t, map[string]string{"notes.md": "x"})
	dest := filepath.Join(t.TempDir(), "data.csv")

	r := New(Options{})
	got, err := r.CopyCSVs(src, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, got)
	assert.NoFileExists(t, dest)
}

func TestCopyCSVs_MissingSource(t *testing.T) {
	t.Parallel()

	r := New(Options{})
	_, err := r.CopyCSVs(filepath.Join(t.TempDir(), "absent"), filepath.Join(t.TempDir(), "data.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report: walk")
}

func TestDownloadDataset(t *testing.T) {
	t.Parallel()

	hub := newFakeHub(t, cancerCSV(3), bankruptcyCSV(4))
	dest := filepath.Join(t.TempDir(), "data.csv")
	r := New(Options{}, WithDownloader(hub))

	got, err := r.DownloadDataset(context.Background(), testCancer, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, got)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, cancerCSV(3), string(data))

	_, err = r.DownloadDataset(context.Background(), "nobody/nothing", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report: download nobody/nothing")
}
