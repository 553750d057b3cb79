package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	ErrDatasetUnreadable = errors.New("catalog dataset unreadable")
	ErrDatasetMalformed  = errors.New("catalog dataset malformed")
)

//go:embed data/products.json
var bundled embed.FS

const bundledPath = "data/products.json"

// Source yields the raw product records. Quantity is never read from a
// source.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
	String() string
}

type FileSource struct {
	FS   fs.FS
	Path string
}

// BundledSource reads the dataset compiled into the binary.
func BundledSource() *FileSource {
	return &FileSource{FS: bundled, Path: bundledPath}
}

func NewFileSource(path string) *FileSource {
	return &FileSource{FS: os.DirFS(filepath.Dir(path)), Path: filepath.Base(path)}
}

func (s *FileSource) String() string { return "file:" + s.Path }

func (s *FileSource) Products(_ context.Context) ([]Product, error) {
	raw, err := fs.ReadFile(s.FS, s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetUnreadable, s.Path, err)
	}

	var out []Product
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetMalformed, s.Path, err)
	}
	return out, nil
}
