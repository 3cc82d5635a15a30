package port

import (
	"context"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
)

type FrameExtractionResult struct {
	Metadata      entity.VideoMetadata
	FramesWritten int
}

// FrameExtractor decodes videoPath sequentially and writes one image per
// frame into the job's frames directory, plus the metadata sidecar before and
// after the loop. videoPath may differ from the job's source when the input
// was transcoded first.
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, videoPath string, job *entity.VideoJob) (*FrameExtractionResult, error)
}
