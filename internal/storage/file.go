package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viklund/stund/internal/apperr"
	"github.com/viklund/stund/internal/tracker"
)

// File implements Provider backed by a single JSON file. Every Load reads
// the whole database into memory and every Save rewrites it via temp file
// and rename, so a crash never leaves a half-written database behind.
type File struct {
	path string // absolute path to the database file
}

// NewFile creates a File provider for the database at path. The file itself
// may not exist yet; Init creates it.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve path: %w", err)
	}
	return &File{path: abs}, nil
}

// Path returns the absolute database location.
func (f *File) Path() string {
	return f.path
}

// Load reads and decodes the database. A missing file maps to
// apperr.ErrNotFound so callers can tell "never initialized" apart from a
// corrupt file; anything else that fails to decode is an error, never an
// implicit empty database.
func (f *File) Load() (*tracker.DB, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("storage: database %s: %w", f.path, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read database: %w", err)
	}
	var db tracker.DB
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("storage: decode database %s: %w", f.path, err)
	}
	if db.Checkpoints == nil || db.Tags == nil {
		return nil, fmt.Errorf("storage: decode database %s: missing checkpoints or tags section", f.path)
	}
	return &db, nil
}

// Save encodes db and atomically replaces the database file:
// tmp file → fsync → rename.
func (f *File) Save(db *tracker.DB) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode database: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stund-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// Init writes an empty database, refusing to clobber an existing one.
func (f *File) Init() error {
	if _, err := os.Stat(f.path); err == nil {
		return fmt.Errorf("storage: database %s: %w", f.path, apperr.ErrAlreadyExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: stat database: %w", err)
	}
	return f.Save(tracker.NewDB())
}
