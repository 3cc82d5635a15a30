package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/archive"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/decode"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/ffmpeg"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/scan"
	"github.com/wg-lux/agl-frame-extractor/internal/infra/sidecar"
	"github.com/wg-lux/agl-frame-extractor/internal/usecase"
)

func requireFFmpeg(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not installed", bin)
		}
	}
}

// makeTestClip renders a 2 second, 5 fps test pattern, i.e. 10 frames.
func makeTestClip(t *testing.T, path string) {
	t.Helper()
	cmd := exec.Command("ffmpeg",
		"-f", "lavfi",
		"-i", "testsrc=duration=2:size=320x240:rate=5",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y",
		path,
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
}

func newBatchRunner(t *testing.T, inputDir, outputDir string) *usecase.BatchRunner {
	t.Helper()
	log := zap.NewNop()
	sidecars := sidecar.NewStore()
	pipeline := usecase.NewProcessVideoUseCase(
		ffmpeg.NewTranscoder("ffmpeg", log),
		sidecar.NewChecker(sidecars, log),
		decode.NewExtractor(sidecars, log),
		archive.NewZipper(),
		nil,
		log,
		usecase.ProcessVideoConfig{ArchiveFrames: true},
	)
	return usecase.NewBatchRunner(
		scan.NewScanner(false),
		pipeline.Execute,
		usecase.BatchConfig{
			InputFolder:  inputDir,
			OutputFolder: outputDir,
			ImageFormat:  "jpg",
		},
		log,
	)
}

func TestExtractionEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	requireFFmpeg(t)

	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	makeTestClip(t, filepath.Join(inputDir, "clip.mov"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	report, err := newBatchRunner(t, inputDir, outputDir).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.Completed)

	// Dense 0-based frame names, no gaps, no extras.
	framesDir := filepath.Join(outputDir, "clip.mov_frames")
	for i := 0; i < 10; i++ {
		assert.FileExists(t, filepath.Join(framesDir, fmt.Sprintf("frame_%d.jpg", i)))
	}
	assert.NoFileExists(t, filepath.Join(framesDir, "frame_10.jpg"))

	meta, err := sidecar.NewStore().Read(filepath.Join(outputDir, "clip.mov_metadata.json"))
	require.NoError(t, err)
	assert.Equal(t, 10, meta.TotalFrames)
	assert.Equal(t, 5, meta.FPS)
	assert.Equal(t, 2000, meta.DurationMS)
	assert.Equal(t, "clip.mov", meta.VideoFile)

	assert.FileExists(t, filepath.Join(outputDir, "clip.mov_frames.zip"))
}

func TestReRunIsNoOp(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	requireFFmpeg(t)

	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	makeTestClip(t, filepath.Join(inputDir, "clip.mov"))

	ctx := context.Background()
	report, err := newBatchRunner(t, inputDir, outputDir).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.Completed)

	frame0 := filepath.Join(outputDir, "clip.mov_frames", "frame_0.jpg")
	before, err := os.Stat(frame0)
	require.NoError(t, err)

	report, err = newBatchRunner(t, inputDir, outputDir).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Completed)

	after, err := os.Stat(frame0)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "frame files must not be rewritten")
}

func TestTranscodeIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	requireFFmpeg(t)

	inputDir := t.TempDir()
	outputDir := t.TempDir()
	src := filepath.Join(inputDir, "clip.mov")
	makeTestClip(t, src)

	job := entity.NewVideoJob(src, outputDir, "jpg")
	tr := ffmpeg.NewTranscoder("ffmpeg", zap.NewNop())

	ctx := context.Background()
	first, err := tr.Transcode(ctx, job)
	require.NoError(t, err)
	info, err := os.Stat(first)
	require.NoError(t, err)

	second, err := tr.Transcode(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := os.Stat(second)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime(), "second call must not re-encode")
}

func TestCorruptVideoFailsWithoutAbortingSiblings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	requireFFmpeg(t)

	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")
	makeTestClip(t, filepath.Join(inputDir, "good.mov"))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "corrupt.mov"), []byte("not a video"), 0o644))

	report, err := newBatchRunner(t, inputDir, outputDir).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures(), 1)
	assert.Equal(t, "corrupt.mov", report.Failures()[0].Job.Name())
	assert.FileExists(t, filepath.Join(outputDir, "good.mov_frames", "frame_0.jpg"))
}
