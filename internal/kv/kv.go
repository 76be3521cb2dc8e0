// Package kv provides the whole-document key-value contract backing the
// history store: read a key's bytes, overwrite a key's bytes, single writer
// by design. Backends must not add locking or partial-update semantics.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal byte-oriented key-value store.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}
