// Package ffmpeg shells out to the ffmpeg binary to normalize input videos
// before extraction.
package ffmpeg

import (
	"context"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
)

// Transcoder re-encodes a video into an mp4 with widely compatible codecs
// (libx264 fast preset, aac audio). The binary name is injectable so tests
// can substitute a stub.
type Transcoder struct {
	bin    string
	logger *zap.Logger
}

func NewTranscoder(bin string, logger *zap.Logger) *Transcoder {
	return &Transcoder{bin: bin, logger: logger}
}

// Transcode blocks until ffmpeg exits. If the derived output path already
// exists the subprocess is never started and the existing file is returned,
// which makes re-runs free.
func (t *Transcoder) Transcode(ctx context.Context, job *entity.VideoJob) (string, error) {
	outPath := job.TranscodedPath()
	if _, err := os.Stat(outPath); err == nil {
		t.logger.Info("transcoded file exists, skipping re-encode",
			zap.String("video", job.Name()),
			zap.String("path", outPath),
		)
		return outPath, nil
	}

	cmd := exec.CommandContext(ctx, t.bin,
		"-i", job.SourcePath,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-y",
		outPath,
	)

	t.logger.Info("transcoding video",
		zap.String("video", job.Name()),
		zap.String("output", outPath),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", &entity.ExternalProcessError{
			Command: t.bin,
			Output:  string(output),
			Err:     err,
		}
	}

	t.logger.Info("transcode finished", zap.String("video", job.Name()))
	return outPath, nil
}
