// Package kv is the key/value repository behind the persisted session.
package kv

import (
	"context"
)

// Repository reads and writes raw values of the session table.
// Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
