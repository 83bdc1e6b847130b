package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps images on the local filesystem under a base directory.
type LocalStore struct {
	baseURL  string // server base URL used to build upload/download URLs
	imageDir string
}

func NewLocalStore(baseURL, uploadDir string) (*LocalStore, error) {
	imageDir := filepath.Join(uploadDir, "images")
	if err := os.MkdirAll(imageDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalStore{baseURL: baseURL, imageDir: imageDir}, nil
}

func (s *LocalStore) UploadURL(ctx context.Context, filename, contentType string) (string, string, error) {
	ext := filepath.Ext(filename)
	key := uuid.New().String() + ext
	token := uuid.New().String()
	uploadURL := fmt.Sprintf("%s/api/v1/upload/%s?key=%s", s.baseURL, token, key)
	return uploadURL, key, nil
}

func (s *LocalStore) Save(key string, reader io.Reader) error {
	path, err := s.safePath(key)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.safePath(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := s.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, int64, error) {
	path, err := s.safePath(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

// safePath rejects keys that would escape the image directory.
func (s *LocalStore) safePath(key string) (string, error) {
	if strings.Contains(key, "..") || strings.ContainsAny(key, "/\\") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.imageDir, key), nil
}
