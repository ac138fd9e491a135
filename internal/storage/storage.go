package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded photo files live. Implementations store
// files flat under server-generated names; callers never pass user-controlled
// paths.
type Storage interface {
	// Save writes the file content under the given name, overwriting any
	// existing file of that name.
	Save(ctx context.Context, fileName string, content io.Reader, size int64, contentType string) error
	// Delete removes the file. Deleting a missing file is not an error.
	Delete(ctx context.Context, fileName string) error
	// URL returns the path or URL under which the file is served.
	URL(fileName string) string
}
