package util

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveUploadedFile saves an uploaded multipart file into dir, named with a
// random UUID so concurrent requests never collide, and returns the path.
// The caller owns the returned file and must remove it on every exit path.
func SaveUploadedFile(dir string, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(dir, uuid.New().String()+filepath.Ext(file.Filename))

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

// RemoveTempFile deletes path and returns any removal error, leaving it to
// the caller to log it rather than mask whatever error it is already
// handling. An empty path is a no-op.
func RemoveTempFile(path string) error {
	if path == "" {
		return nil
	}
	return os.Remove(path)
}
