// Package catalog serves the static catalog files.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/kailas-cloud/storefront/internal/domain"
	"github.com/kailas-cloud/storefront/internal/domain/catalog"
)

//go:embed data
var embedded embed.FS

// Embedded returns the catalog compiled into the binary, rooted at the language directories.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // "data" is a valid path, Sub cannot fail
	}
	return sub
}

// FileStore reads catalog files laid out as <lang>/<entity>/<category>.json.
type FileStore struct {
	fsys fs.FS
}

// NewFileStore creates a store over fsys.
func NewFileStore(fsys fs.FS) *FileStore {
	return &FileStore{fsys: fsys}
}

// NewDirStore creates a store over a directory on disk.
func NewDirStore(dir string) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog dir %s is not a directory", dir)
	}
	return NewFileStore(os.DirFS(dir)), nil
}

// Load returns the raw JSON of the file addressed by key.
func (s *FileStore) Load(ctx context.Context, key catalog.Key) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key.Category == "" || strings.ContainsAny(key.Category, `/\`) || key.Category == ".." {
		return nil, fmt.Errorf("%w: category %q", domain.ErrInvalidFilter, key.Category)
	}

	data, err := fs.ReadFile(s.fsys, key.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Ping checks that the catalog root is readable.
func (s *FileStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fs.ReadDir(s.fsys, "."); err != nil {
		return fmt.Errorf("catalog root: %w", err)
	}
	return nil
}
