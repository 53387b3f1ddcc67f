// Package kv provides the key/value storage substrate of the Resilia data layer.
//
// # Overview
//
// Every logical record the application keeps on the device (the accounts
// collection, the active session, the mood and conversation histories, the
// device id) lives under a fixed key as a single opaque value. Callers read
// the whole value, change it in memory and write the whole value back.
//
// Key Types
//
//   - Repository: Get/Set/Delete/List/Clear over byte values
//   - Transactor: optional capability to group writes
//   - SQLiteRepository: durable implementation over dbx.DBTX
//   - MemoryRepository: in-process implementation for tests and tools
//
// LoadJSON and SaveJSON layer the JSON encoding used for all stored values on
// top of any Repository.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	users, found, err := kv.LoadJSON[[]models.UserRecord](ctx, repo, "resilia_users_v1")
//	_ = kv.SaveJSON(ctx, repo, "resilia_users_v1", users)
//
// A missing key is not an error: Get returns (nil, nil).
package kv
