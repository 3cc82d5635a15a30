package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func baseNames(paths []string) []string {
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func TestVideosMatchesMovCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mov", "b.MOV", "c.Mov", "notes.txt", "d.mp4")

	got, err := NewScanner(false).Videos(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.mov", "b.MOV", "c.Mov"}, baseNames(got))
}

func TestVideosIncludesMP4WhenEnabled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mov", "d.mp4", "e.MP4", "f.avi")

	got, err := NewScanner(true).Videos(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.mov", "d.mp4", "e.MP4"}, baseNames(got))
}

func TestVideosSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "backup.mov"), 0o755))
	writeFiles(t, dir, "a.mov")

	got, err := NewScanner(false).Videos(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mov"}, baseNames(got))
}

func TestVideosEmptyDir(t *testing.T) {
	got, err := NewScanner(true).Videos(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVideosMissingDir(t *testing.T) {
	_, err := NewScanner(false).Videos(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
