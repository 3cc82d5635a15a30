// Package scan enumerates candidate video files in the input folder.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner lists video files by a case-insensitive extension allow-list.
// ".mov" is always accepted; ".mp4" only when enabled.
type Scanner struct {
	includeMP4 bool
}

func NewScanner(includeMP4 bool) *Scanner {
	return &Scanner{includeMP4: includeMP4}
}

func (s *Scanner) Videos(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input folder: %w", err)
	}

	var videos []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".mov":
			videos = append(videos, filepath.Join(inputDir, entry.Name()))
		case ".mp4":
			if s.includeMP4 {
				videos = append(videos, filepath.Join(inputDir, entry.Name()))
			}
		}
	}
	return videos, nil
}
