package storage

import (
	"context"
	"io"
)

// FileStorage keeps uploaded evidence: approval signatures and justification
// attachments. Paths are relative keys such as "assinaturas/<file>.png".
type FileStorage interface {
	// Upload writes file under path and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes path. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error
}
