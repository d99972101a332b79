package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	apperrors "usercontacts/internal/errors"
)

// Disk stores uploads as files in a single directory.
type Disk struct {
	dir string
}

var _ Store = (*Disk)(nil)

// NewDisk returns a Store rooted at dir. The directory must already exist; see EnsureDir.
func NewDisk(dir string) *Disk {
	return &Disk{dir: dir}
}

// Dir returns the upload directory.
func (d *Disk) Dir() string {
	return d.dir
}

// EnsureDir creates dir when missing and reports whether it had to.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

func (d *Disk) Save(_ context.Context, name string, r io.Reader) error {
	if err := checkName(name); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(d.dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

// List returns the names of every regular file in the directory, sorted.
func (d *Disk) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (d *Disk) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(d.dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.ErrFileNotFound
		}
		return err
	}
	return nil
}

func (d *Disk) Open(_ context.Context, name string) (io.ReadCloser, ObjectInfo, error) {
	if err := checkName(name); err != nil {
		return nil, ObjectInfo{}, err
	}
	p := filepath.Join(d.dir, name)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, apperrors.ErrFileNotFound
		}
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, ObjectInfo{}, err
	}
	mt, err := mimetype.DetectFile(p)
	if err != nil {
		_ = f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{Name: name, ContentType: mt.String(), Size: st.Size(), ModTime: st.ModTime()}, nil
}
