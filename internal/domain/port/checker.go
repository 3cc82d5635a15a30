package port

import "github.com/wg-lux/agl-frame-extractor/internal/domain/entity"

// CompletionChecker answers whether a video's extraction already finished,
// judging only by durable output artifacts. Any doubt (missing or corrupt
// sidecar, filesystem errors) is answered as "not complete".
type CompletionChecker interface {
	IsComplete(job *entity.VideoJob) bool
}
