package sidecar

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
	"github.com/wg-lux/agl-frame-extractor/internal/domain/port"
)

// Checker implements the idempotent skip-check: a video counts as processed
// when its frames directory and sidecar exist and the number of image files
// with the configured extension equals the sidecar's total_frames. Every
// failure mode (missing artifacts, corrupt sidecar, filesystem errors)
// answers "not complete", which at worst re-extracts.
type Checker struct {
	store  port.SidecarStore
	logger *zap.Logger
}

func NewChecker(store port.SidecarStore, logger *zap.Logger) *Checker {
	return &Checker{store: store, logger: logger}
}

func (c *Checker) IsComplete(job *entity.VideoJob) bool {
	info, err := os.Stat(job.FramesDir())
	if err != nil || !info.IsDir() {
		return false
	}

	meta, err := c.store.Read(job.SidecarPath())
	if err != nil {
		return false
	}
	// A zero count is indistinguishable from a sidecar that never recorded
	// the field; force re-extraction rather than trusting it.
	if meta.TotalFrames <= 0 {
		return false
	}

	count, others, err := countFrames(job.FramesDir(), job.ImageFormat)
	if err != nil {
		return false
	}
	if count == 0 && others > 0 {
		c.logger.Warn("frames directory holds no files of the configured format; a format change forces re-extraction",
			zap.String("video", job.Name()),
			zap.String("image_format", job.ImageFormat),
			zap.Int("other_files", others),
		)
	}
	return count == meta.TotalFrames
}

func countFrames(dir, format string) (matching, others int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, err
	}
	suffix := "." + strings.ToLower(format)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			matching++
		} else {
			others++
		}
	}
	return matching, others, nil
}
