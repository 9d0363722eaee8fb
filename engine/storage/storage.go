// package storage keeps the small amount of state the viewer persists between runs: camera defaults, distance and
// pan bounds, and the saved viewpoint collection. Values are opaque byte slices, in practice JSON documents.
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("storage: closed")
)

// Driver names a KV backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverSqlite Driver = "sqlite"
)

// Valid reports whether d names a known backend.
func (d Driver) Valid() bool {
	return d == DriverMemory || d == DriverSqlite
}

// KV is a string-keyed value store.
type KV interface {
	// Get returns the value stored under key.
	//
	// Parameters:
	//   - key: the entry key
	//
	// Returns:
	//   - []byte: a copy of the stored value
	//   - error: ErrNotFound if the key has no value, ErrClosed after Close
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	//
	// Parameters:
	//   - key: the entry key
	//   - value: the value to store, copied by the store
	//
	// Returns:
	//   - error: ErrClosed after Close
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	//
	// Parameters:
	//   - key: the entry key
	//
	// Returns:
	//   - error: ErrClosed after Close
	Delete(key string) error

	// Close releases the store. Pending writes are flushed first.
	//
	// Returns:
	//   - error: the first error encountered while flushing or closing
	Close() error
}

// Open creates the KV backend named by driver.
//
// Parameters:
//   - driver: DriverMemory or DriverSqlite
//   - path: the database file, used by DriverSqlite only
//   - options: sqlite builder options, ignored by DriverMemory
//
// Returns:
//   - KV: the opened store
//   - error: if the driver is unknown or the database cannot be opened
func Open(driver Driver, path string, options ...SqliteBuilderOption) (KV, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSqlite:
		return NewSqlite(path, options...)
	}
	return nil, fmt.Errorf("storage: unknown driver %q", driver)
}
