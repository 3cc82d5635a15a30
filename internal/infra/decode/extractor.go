// Package decode reads video streams frame by frame and writes each frame as
// an image file.
package decode

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	vidio "github.com/AlexEidt/Vidio"
	"go.uber.org/zap"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
	"github.com/wg-lux/agl-frame-extractor/internal/domain/port"
)

const jpegQuality = 90

// Extractor walks a video's frames in decode order and persists them as
// frame_<n>.<format>, n counting densely from 0. The metadata sidecar is
// written before the first frame so an interrupted run still leaves the
// expected frame count behind, and re-written afterwards with the same
// open-time values.
type Extractor struct {
	sidecars port.SidecarStore
	logger   *zap.Logger
}

func NewExtractor(sidecars port.SidecarStore, logger *zap.Logger) *Extractor {
	return &Extractor{sidecars: sidecars, logger: logger}
}

func (e *Extractor) ExtractFrames(ctx context.Context, videoPath string, job *entity.VideoJob) (*port.FrameExtractionResult, error) {
	video, err := vidio.NewVideo(videoPath)
	if err != nil {
		return nil, &entity.DecodeOpenError{Path: videoPath, Err: err}
	}
	defer video.Close()

	// Container-level attributes, captured before any frame is decoded.
	// Frames() is the container's estimate; the loop below is the truth.
	meta := entity.NewVideoMetadata(video.Frames(), video.FPS(), video.Duration(), job.Name())

	if err := os.MkdirAll(job.FramesDir(), 0o755); err != nil {
		return nil, &entity.FrameWriteError{Path: job.FramesDir(), Err: err}
	}
	e.logger.Info("frames directory ready",
		zap.String("video", job.Name()),
		zap.String("dir", job.FramesDir()),
	)

	if err := e.sidecars.Write(job.SidecarPath(), meta); err != nil {
		return nil, &entity.FrameWriteError{Path: job.SidecarPath(), Err: err}
	}

	frame := image.NewRGBA(image.Rect(0, 0, video.Width(), video.Height()))
	if err := video.SetFrameBuffer(frame.Pix); err != nil {
		return nil, &entity.DecodeOpenError{Path: videoPath, Err: err}
	}

	frameNumber := 0
	for video.Read() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		framePath := job.FramePath(frameNumber)
		if err := writeImage(framePath, frame, job.ImageFormat); err != nil {
			return nil, &entity.FrameWriteError{Path: framePath, Err: err}
		}
		frameNumber++
	}

	// Second sidecar write uses the open-time values, not a recount.
	if err := e.sidecars.Write(job.SidecarPath(), meta); err != nil {
		return nil, &entity.FrameWriteError{Path: job.SidecarPath(), Err: err}
	}

	e.logger.Info("extraction finished",
		zap.String("video", job.Name()),
		zap.Int("frames_written", frameNumber),
		zap.Int("reported_total_frames", meta.TotalFrames),
	)

	return &port.FrameExtractionResult{
		Metadata:      meta,
		FramesWritten: frameNumber,
	}, nil
}

func writeImage(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(f, img)
	default:
		err = fmt.Errorf("unsupported image format %q", format)
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
