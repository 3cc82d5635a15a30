package port

import "context"

// ResultStore uploads finished artifacts to remote storage.
type ResultStore interface {
	UploadFile(ctx context.Context, objectKey, filePath, contentType string) error
}
