package kv

import (
	"context"
)

// Repository is a flat key/value store. Get returns nil, nil for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Transactor is implemented by repositories that can apply several writes as
// one unit. fn receives a Repository bound to the unit of work.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}

// Atomic runs fn inside a transaction when r supports one and directly
// against r otherwise.
func Atomic(ctx context.Context, r Repository, fn func(ctx context.Context, r Repository) error) error {
	if t, ok := r.(Transactor); ok {
		return t.InTx(ctx, fn)
	}
	return fn(ctx, r)
}
