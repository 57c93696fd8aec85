package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"artistbooking/internal/domain"
)

type localStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage returns a FileStorage that writes under root and resolves
// public URLs against baseURL (e.g. "https://example.com/storage").
func NewLocalStorage(root, baseURL string) (domain.FileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &localStorage{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Store writes the upload under folder with a random name, keeping the
// original extension. The returned path is relative to the storage root.
func (s *localStorage) Store(ctx context.Context, file *domain.FileUpload, folder string) (string, error) {
	if file == nil || file.Content == nil {
		return "", fmt.Errorf("no file content")
	}
	folder = filepath.Clean(folder)
	if folder == "." || strings.Contains(folder, "..") {
		return "", fmt.Errorf("invalid folder %q", folder)
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	relPath := filepath.ToSlash(filepath.Join(folder, name))
	fullPath := filepath.Join(dir, name)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, file.Content); err != nil {
		out.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("close file: %w", err)
	}
	return relPath, nil
}

func (s *localStorage) Exists(ctx context.Context, path string) (bool, error) {
	full, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *localStorage) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *localStorage) URL(path string) string {
	return s.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// resolve maps a relative stored path to an absolute one, rejecting escapes
// from the storage root.
func (s *localStorage) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	full := filepath.Join(s.root, clean)
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid path %q", path)
	}
	return full, nil
}
