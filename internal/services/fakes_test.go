package services

import (
	"context"
	"errors"
)

var errBroken = errors.New("disk full")

// brokenRepo reads as empty and fails every write.
type brokenRepo struct{}

func (brokenRepo) Get(context.Context, string) ([]byte, error)     { return nil, nil }
func (brokenRepo) Set(context.Context, string, []byte) error       { return errBroken }
func (brokenRepo) Delete(context.Context, string) error            { return errBroken }
func (brokenRepo) List(context.Context) (map[string][]byte, error) { return nil, nil }
func (brokenRepo) Clear(context.Context) error                     { return errBroken }

// unreadableRepo fails every read and accepts writes.
type unreadableRepo struct{ brokenRepo }

func (unreadableRepo) Get(context.Context, string) ([]byte, error)     { return nil, errBroken }
func (unreadableRepo) Set(context.Context, string, []byte) error       { return nil }
func (unreadableRepo) List(context.Context) (map[string][]byte, error) { return nil, errBroken }
