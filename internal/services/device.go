package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/resilia/internal/common"
	"github.com/dmitrijs2005/resilia/internal/logging"
	"github.com/dmitrijs2005/resilia/internal/repositories/kv"
	"github.com/google/uuid"
)

// Device identifies this installation. Activity histories belong to the
// device rather than to an account.
type Device struct {
	repo kv.Repository
	log  logging.Logger
}

// NewDevice returns a Device backed by repo.
func NewDevice(repo kv.Repository, log logging.Logger) *Device {
	return &Device{repo: repo, log: log}
}

// ID returns the persisted device id, generating and storing one on first use.
// An unreadable id is replaced.
func (d *Device) ID(ctx context.Context) (string, error) {
	id, found, err := kv.LoadJSON[string](ctx, d.repo, KeyDeviceID)
	if err != nil {
		d.log.Warn(ctx, "device id unreadable, generating a new one", "error", err)
	}
	if found && id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := kv.SaveJSON(ctx, d.repo, KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("save device id: %w", err)
	}
	d.log.Info(ctx, "device id created", "device", id)
	return id, nil
}

// StoredKeys lists the keys currently held in the device store, sorted.
func (d *Device) StoredKeys(ctx context.Context) ([]string, error) {
	all, err := d.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list keys: %w", common.ErrStorageUnavailable, err)
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Reset erases everything kept on this device: accounts, the session and both
// histories. A fresh device id is issued and returned.
func (d *Device) Reset(ctx context.Context) (string, error) {
	if err := d.repo.Clear(ctx); err != nil {
		return "", fmt.Errorf("%w: clear store: %w", common.ErrStorageUnavailable, err)
	}
	d.log.Info(ctx, "device store erased")
	return d.ID(ctx)
}
