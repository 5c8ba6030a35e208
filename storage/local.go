package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images below Root, which is also served at URLPrefix.
type LocalStore struct {
	Root      string
	URLPrefix string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root, URLPrefix: "/static"}
}

func (s *LocalStore) Save(_ context.Context, relPath string, data []byte, _ string) error {
	target := filepath.Join(s.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}
	return os.WriteFile(target, data, 0o644)
}

func (s *LocalStore) Delete(_ context.Context, relPath string) error {
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(relPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalStore) URL(relPath string) string {
	return strings.TrimRight(s.URLPrefix, "/") + "/" + strings.TrimLeft(relPath, "/")
}
