// Package storage defines the blob store used for uploaded documents and
// file-backed key-value records.
package storage

import "github.com/starford/vetdesk/internal/models"

// Provider is the interface for blob operations. Paths are relative to the
// store root.
type Provider interface {
	// List returns metadata for every file under dir.
	List(dir string) ([]models.StoredFile, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Abs resolves path to an absolute file name inside the root.
	Abs(path string) (string, error)
}
