// Package kv is the durable key-value store behind the cart and the session.
//
// Values are opaque byte slices (the stores put JSON in them). Get returns
// (nil, nil) for a missing key so callers can tell "absent" from "broken"
// without matching errors.
package kv

import (
	"context"
)

// UpdateFunc receives the current value (nil when absent) and returns the
// new one. Returning a nil value deletes the key; returning an error aborts
// the update and leaves the stored value untouched.
type UpdateFunc func(current []byte) ([]byte, error)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// Update performs an atomic read-modify-write of one key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
