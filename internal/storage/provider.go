// Package storage persists the tracker database as a single JSON file.
package storage

import "github.com/viklund/stund/internal/tracker"

// Provider is the interface for database persistence.
type Provider interface {
	// Load reads the whole database into memory.
	Load() (*tracker.DB, error)
	// Save atomically replaces the database with db.
	Save(db *tracker.DB) error
	// Init creates a new empty database; fails when one already exists.
	Init() error
}
