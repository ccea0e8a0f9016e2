// Package models defines the domain types for stund.
package models

// TagID identifies a tag in the registry. Ids are allocated from 1 upward;
// 0 is reserved for the NoTag sentinel and is never stored.
type TagID uint16

// NoTag marks a checkpoint as untagged. It is never present in the registry
// and never collides with an allocated id.
const NoTag TagID = 0

// Tag is a named category for checkpoints: a short name for quick CLI entry
// and a long name for display. Short names are unique across the registry.
type Tag struct {
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

// Checkpoint is a timestamped record marking a point in time. The timestamp
// itself is the key under which the checkpoint is stored, not a field.
//
// Tag holds the tag id by value; the tag object is looked up in the registry
// at read time. A checkpoint may therefore outlive its tag, in which case
// readers treat it as untagged.
type Checkpoint struct {
	Message string `json:"message"`
	Tag     TagID  `json:"tag,omitempty"`
}

// Tagged reports whether the checkpoint carries a tag reference. The
// reference may still be dangling; resolving it is the registry's job.
func (c Checkpoint) Tagged() bool {
	return c.Tag != NoTag
}
