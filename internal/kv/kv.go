// Package kv provides small persistent key-value stores for client state
// that must outlive the process, such as dismissed notification ids.
package kv

import (
	"fmt"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// Store is a string key-value store. Get reports ok=false for missing keys.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open returns the store for driver. path is the database file for sqlite
// and the directory for file; memory ignores it.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverFile:
		return OpenFile(path)
	}
	return nil, fmt.Errorf("kv: unknown driver %q", driver)
}
