// Package kv provides the durable key-value substrate behind the report and
// session stores. Values are opaque byte slices (JSON documents in practice);
// callers own serialization. Two embedded backends are available: SQLite
// (default, a single .hz/hz.db file) and Dolt (a .hz/hz/ repository with
// commit history over every write).
package kv

import "errors"

// ErrNoKey is returned by Get when the key has never been set or was deleted.
var ErrNoKey = errors.New("key not found")

// Store is a durable key-value store. Implementations must make Set a full
// replacement of the previous value and must tolerate Delete on a missing key.
type Store interface {
	// Get returns the value stored under key, or ErrNoKey.
	Get(key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases the underlying database connection.
	Close() error
}
