// Package storage provides the key-value stores that hold whole-collection snapshots.
//
// Every backend stores opaque byte values under string keys. Callers are expected to read a
// full collection, transform it and write it back; no backend offers transactions across
// keys, so concurrent writers of the same key follow last-write-wins.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is the persistence contract used by the repositories.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
