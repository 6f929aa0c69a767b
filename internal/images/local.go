package images

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps images on the local filesystem under a single directory,
// served by the static file route.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	ref := filepath.ToSlash(filepath.Join(s.dir, name))

	dst, err := os.Create(filepath.FromSlash(ref))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}
	return ref, nil
}

func (s *LocalStore) Remove(ctx context.Context, ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) URL(ref string) string {
	return "/" + strings.TrimPrefix(filepath.ToSlash(ref), "/")
}

// Dir is the directory the static file route serves from.
func (s *LocalStore) Dir() string {
	return s.dir
}

// resolve rejects refs that escape the image directory.
func (s *LocalStore) resolve(ref string) (string, error) {
	path := filepath.Clean(filepath.FromSlash(ref))
	if !strings.HasPrefix(path, filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("ref %q outside image dir: %w", ref, fs.ErrInvalid)
	}
	return path, nil
}
