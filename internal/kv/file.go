package kv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/starford/vetdesk/internal/apperr"
	"github.com/starford/vetdesk/internal/storage"
)

// File stores one value per file under a directory, written atomically.
type File struct {
	blobs storage.Provider
}

// OpenFile returns a File store rooted at dir.
func OpenFile(dir string) (*File, error) {
	fs, err := storage.NewFS(dir)
	if err != nil {
		return nil, fmt.Errorf("kv: %w", err)
	}
	return NewFile(fs), nil
}

// NewFile wraps an existing blob store.
func NewFile(blobs storage.Provider) *File {
	return &File{blobs: blobs}
}

func fileName(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("kv: invalid key %q: %w", key, apperr.ErrInvalid)
	}
	return key + ".json", nil
}

func (s *File) Get(key string) (string, bool, error) {
	name, err := fileName(key)
	if err != nil {
		return "", false, err
	}
	data, err := s.blobs.Read(name)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv: get %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *File) Set(key, value string) error {
	name, err := fileName(key)
	if err != nil {
		return err
	}
	if err := s.blobs.Write(name, []byte(value)); err != nil {
		return fmt.Errorf("kv: set %s: %w", key, err)
	}
	return nil
}

func (s *File) Delete(key string) error {
	name, err := fileName(key)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(name); err != nil {
		return fmt.Errorf("kv: delete %s: %w", key, err)
	}
	return nil
}

func (s *File) Close() error { return nil }
