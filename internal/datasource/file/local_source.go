// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a data source that reads a single file from the local disk.
type Local struct{ path string }

// NewLocal returns a Local source bound to path. The value is safe for
// concurrent use as long as the path itself is valid for concurrent reads.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the filesystem path this source reads from.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading.
//
// If ctx is already canceled at call time, Open returns the context error
// without touching the filesystem. Filesystem errors are wrapped with the
// path for context while keeping errors.Is/As checks intact (e.g.
// errors.Is(err, os.ErrNotExist) and errors.Is(err, os.ErrPermission)), which
// is what lets callers tell a missing input apart from an unreadable one.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
