package tracker

import "github.com/viklund/stund/internal/models"

// DB is the complete tracked state: every checkpoint plus the tag registry.
// It is what gets serialized to disk, wholesale, on every mutation.
type DB struct {
	Checkpoints *Store    `json:"checkpoints"`
	Tags        *Registry `json:"tags"`
}

// NewDB returns an empty database.
func NewDB() *DB {
	return &DB{Checkpoints: NewStore(), Tags: NewRegistry()}
}

// TagOf resolves a checkpoint's tag reference against the registry. Untagged
// checkpoints and dangling references both report false; a dangling
// reference is indistinguishable from no tag everywhere outside the raw
// serialized form.
func (db *DB) TagOf(cp models.Checkpoint) (models.Tag, bool) {
	if cp.Tag == models.NoTag {
		return models.Tag{}, false
	}
	return db.Tags.ByID(cp.Tag)
}
