// Package store persists named collections as single encoded blobs.
//
// Every key carries a version that increments on each write. Put is a
// compare-and-swap on that version, so two writers racing a
// read-modify-write cannot silently overwrite each other.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("store: key not found")
	ErrVersionConflict = errors.New("store: version conflict")
	ErrUnavailable     = errors.New("store: no persistent storage configured")
)

// Record is a stored blob and the version it was read at. Version 0 means
// the key does not exist yet.
type Record struct {
	Data    []byte
	Version int64
}

type Store interface {
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) (Record, error)
	// Put writes data if the key is still at version and returns the new
	// version. Use version 0 to create.
	Put(ctx context.Context, key string, data []byte, version int64) (int64, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
