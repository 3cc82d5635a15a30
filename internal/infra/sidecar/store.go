// Package sidecar persists per-video metadata as a JSON file next to the
// frames directory and decides, from those artifacts alone, whether a video
// has already been processed.
package sidecar

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wg-lux/agl-frame-extractor/internal/domain/entity"
)

type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Write(path string, meta entity.VideoMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func (s *Store) Read(path string) (entity.VideoMetadata, error) {
	var meta entity.VideoMetadata
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, fmt.Errorf("read metadata: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("parse metadata: %w", err)
	}
	return meta, nil
}
