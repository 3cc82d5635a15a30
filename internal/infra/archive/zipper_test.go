package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveFrames(t *testing.T) {
	framesDir := t.TempDir()
	names := []string{"frame_0.jpg", "frame_1.jpg", "frame_2.jpg"}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(framesDir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(framesDir, "sub"), 0o755))

	outputPath := filepath.Join(t.TempDir(), "frames.zip")
	require.NoError(t, NewZipper().ArchiveFrames(context.Background(), framesDir, outputPath))

	reader, err := zip.OpenReader(outputPath)
	require.NoError(t, err)
	defer reader.Close()

	var got []string
	for _, f := range reader.File {
		got = append(got, f.Name)
	}
	assert.ElementsMatch(t, names, got)
}

func TestArchiveFramesMissingDir(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "frames.zip")
	err := NewZipper().ArchiveFrames(context.Background(), filepath.Join(t.TempDir(), "nope"), outputPath)
	assert.Error(t, err)
}

func TestArchiveFramesCancelled(t *testing.T) {
	framesDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(framesDir, "frame_0.jpg"), []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewZipper().ArchiveFrames(ctx, framesDir, filepath.Join(t.TempDir(), "frames.zip"))
	assert.ErrorIs(t, err, context.Canceled)
}
