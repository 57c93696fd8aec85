package domain

import (
	"context"
	"io"
)

// FileUpload is an uploaded file ready to be persisted by a FileStorage.
type FileUpload struct {
	Filename string
	Content  io.Reader
	Size     int64
}

// FileStorage abstracts where uploaded files live. Store returns a relative
// path; URL maps a stored relative path to a public absolute URL.
type FileStorage interface {
	Store(ctx context.Context, file *FileUpload, folder string) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}
