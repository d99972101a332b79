package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	apperrors "usercontacts/internal/errors"
)

const (
	BackendDisk  = "disk"
	BackendMinio = "minio"
)

// ObjectInfo describes a stored upload.
type ObjectInfo struct {
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Store keeps uploaded files under flat names.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Open(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error)
}

// UniqueName prefixes the base of the client supplied file name with the upload time in
// unix milliseconds.
func UniqueName(original string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}

// ValidName reports whether name is a plain file name without any path component.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

func checkName(name string) error {
	if !ValidName(name) {
		return apperrors.ErrFileNotFound
	}
	return nil
}
