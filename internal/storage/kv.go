package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: not found")
	// ErrCorrupt marks a backend whose stored bytes cannot be decoded.
	ErrCorrupt = errors.New("storage: corrupt data")
)

// KVStore is a flat string slot store. Get returns ErrNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
