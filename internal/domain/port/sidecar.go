package port

import "github.com/wg-lux/agl-frame-extractor/internal/domain/entity"

// SidecarStore persists and loads the per-video metadata record.
type SidecarStore interface {
	Write(path string, meta entity.VideoMetadata) error
	Read(path string) (entity.VideoMetadata, error)
}
