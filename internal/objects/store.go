// Package objects stores named JSON documents. The document-backed
// repositories sit on top of a Store and do not care whether the bytes end
// up on local disk or in an S3 bucket.
package objects

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Read when no object has the given name.
var ErrNotExist = errors.New("object does not exist")

// Store reads and replaces whole objects. Write must be atomic: a concurrent
// Read sees either the previous or the new content, never a mix.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}
