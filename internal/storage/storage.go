package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bilgehannal/dnsredir/pkg/dnsredir"
)

// Dir serves slash-separated paths out of a root directory on the local
// filesystem. It implements dnsredir.Storage.
type Dir struct {
	root string
}

// NewDir creates the root directory if needed and returns a Dir rooted there.
func NewDir(root string) (*Dir, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root must not be empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Dir{root: root}, nil
}

// Root returns the root directory.
func (d *Dir) Root() string {
	return d.root
}

// resolve maps a storage path like "/hosts/default" onto the root directory.
func (d *Dir) resolve(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(path))
}

// Exists reports whether a regular file exists at path.
func (d *Dir) Exists(path string) bool {
	info, err := os.Stat(d.resolve(path))
	return err == nil && info.Mode().IsRegular()
}

// Create creates an empty file at path, making parent directories as needed.
// The size hint is ignored; files grow as they are written.
func (d *Dir) Create(path string, size int64) error {
	full := d.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f.Close()
}

// Open opens the file at path for reading and writing.
func (d *Dir) Open(path string) (dnsredir.File, error) {
	f, err := os.OpenFile(d.resolve(path), os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	return &file{f: f}, nil
}

// Delete removes the file at path.
func (d *Dir) Delete(path string) error {
	return os.Remove(d.resolve(path))
}

// file wraps an os.File as a dnsredir.File.
type file struct {
	f *os.File
}

func (f *file) ReadAt(p []byte, off int64) (int, error) {
	return f.f.ReadAt(p, off)
}

func (f *file) WriteAt(p []byte, off int64) (int, error) {
	return f.f.WriteAt(p, off)
}

func (f *file) Size() (int64, error) {
	info, err := f.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (f *file) Sync() error {
	return f.f.Sync()
}

func (f *file) Close() error {
	return f.f.Close()
}
