package port

import "context"

// Archiver bundles a frames directory into a single archive file.
type Archiver interface {
	ArchiveFrames(ctx context.Context, framesDir, outputPath string) error
}
