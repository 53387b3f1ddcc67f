package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/resilia/internal/common"
)

// LoadJSON decodes the value stored under key and reports whether the key was
// present. Read and decode failures wrap common.ErrStorageUnavailable and
// return the zero value of T.
func LoadJSON[T any](ctx context.Context, r Repository, key string) (T, bool, error) {
	var v T
	data, err := r.Get(ctx, key)
	if err != nil {
		return v, false, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	if data == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, false, fmt.Errorf("%w: decode %s: %w", common.ErrStorageUnavailable, key, err)
	}
	return v, true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, r Repository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}
