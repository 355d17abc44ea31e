package domain

import "context"

// FileStorage abstracts the object storage service holding formation files.
// Uploads are whole-object writes; the returned URL is what gets persisted
// on the formation row.
type FileStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
}
