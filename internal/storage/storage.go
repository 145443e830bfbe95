// Package storage is the persistence collaborator: the whole
// application state travels as one serialized blob stored under a
// single fixed key. There is no schema migration or versioning.
package storage

import (
	"errors"
	"io/fs"
	"os"
)

// StateKey is the fixed key the state blob lives under.
const StateKey = "furnitureBillingApp"

// Storage saves and loads the serialized state. Load reports absence
// through its second return instead of an error; a brand-new install
// has no state and that is not a failure.
type Storage interface {
	Save(data []byte) error
	Load() (data []byte, ok bool, err error)
}

// FileStorage keeps the blob in a single file. This is the default
// backend when no database DSN is configured.
type FileStorage struct {
	Path string
}

func NewFile(path string) *FileStorage { return &FileStorage{Path: path} }

func (f *FileStorage) Save(data []byte) error {
	return os.WriteFile(f.Path, data, 0o644)
}

func (f *FileStorage) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
