package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
)

func newJob(t *testing.T) *entity.VideoJob {
	t.Helper()
	out := t.TempDir()
	src := filepath.Join(out, "clip.mov")
	require.NoError(t, os.WriteFile(src, []byte("video"), 0o644))
	return entity.NewVideoJob(src, out, "jpg")
}

func TestTranscodeSkipsWhenOutputExists(t *testing.T) {
	job := newJob(t)
	require.NoError(t, os.WriteFile(job.TranscodedPath(), []byte("already encoded"), 0o644))

	// The binary does not exist; reaching it would fail the test.
	tr := NewTranscoder(filepath.Join(t.TempDir(), "no-such-ffmpeg"), zap.NewNop())
	got, err := tr.Transcode(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, job.TranscodedPath(), got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "already encoded", string(data))
}

func TestTranscodeNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on the false binary")
	}
	job := newJob(t)

	tr := NewTranscoder("false", zap.NewNop())
	_, err := tr.Transcode(context.Background(), job)
	require.Error(t, err)

	var procErr *entity.ExternalProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, "false", procErr.Command)
}

func TestTranscodeRunsConfiguredBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a shell stub")
	}
	job := newJob(t)

	// Stub encoder: touches its last argument, the output path.
	stub := filepath.Join(t.TempDir(), "fake-ffmpeg")
	script := "#!/bin/sh\nfor last; do :; done\n: > \"$last\"\n"
	require.NoError(t, os.WriteFile(stub, []byte(script), 0o755))

	tr := NewTranscoder(stub, zap.NewNop())
	got, err := tr.Transcode(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, job.TranscodedPath(), got)
	assert.FileExists(t, got)
}
