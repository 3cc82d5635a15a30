package port

import (
	"context"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
)

// Transcoder normalizes an input video into a decoder-friendly container.
// It is idempotent: if the derived output path already exists it is returned
// without re-encoding.
type Transcoder interface {
	Transcode(ctx context.Context, job *entity.VideoJob) (string, error)
}
