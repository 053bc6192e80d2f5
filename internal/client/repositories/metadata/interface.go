// Package metadata is the client's local key/value store. It holds the
// session record and the cached profile, each under a fixed key.
package metadata

import (
	"context"
)

// Repository stores opaque byte values by key. Get of a missing key returns
// nil, nil.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
