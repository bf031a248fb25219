// Package datasource abstracts where input bytes come from. The converter
// core only needs an io.ReadCloser; concrete sources (local files today) live
// in subpackages.
package datasource

import (
	"context"
	"io"
)

// Source yields a readable stream of input bytes. Open may be called more
// than once; each call returns an independent stream.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
