// Package tracker implements the in-memory time tracking state: a
// time-ordered checkpoint store and a tag registry, bundled into a DB that
// serializes to a stable JSON form.
//
// A checkpoint marks a moment; the span between one checkpoint and the next
// chronological one is the duration of whatever the earlier checkpoint
// describes. Nothing here touches the clock or the filesystem.
package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strconv"

	"github.com/viklund/stund/internal/apperr"
	"github.com/viklund/stund/internal/models"
)

// Store maps Unix timestamps (seconds) to checkpoints and keeps them in
// chronological order. Timestamps are unique keys: inserting at an occupied
// timestamp replaces the previous checkpoint.
type Store struct {
	order []int64 // ascending timestamps
	byTS  map[int64]*models.Checkpoint
}

// NewStore returns an empty checkpoint store.
func NewStore() *Store {
	return &Store{byTS: make(map[int64]*models.Checkpoint)}
}

// Len returns the number of stored checkpoints.
func (s *Store) Len() int {
	return len(s.order)
}

// Insert stores a checkpoint at ts. An existing checkpoint at the same
// timestamp is silently overwritten; last write wins.
func (s *Store) Insert(ts int64, message string, tag models.TagID) {
	if _, ok := s.byTS[ts]; !ok {
		i, _ := slices.BinarySearch(s.order, ts)
		s.order = slices.Insert(s.order, i, ts)
	}
	s.byTS[ts] = &models.Checkpoint{Message: message, Tag: tag}
}

// Resolve maps an identifier to the timestamp key it currently addresses.
// Timestamp identifiers pass through unchanged, whether or not a checkpoint
// exists there. Positional identifiers resolve against the current ordering:
// position 0 is the newest checkpoint. Out-of-range positions report false.
func (s *Store) Resolve(id models.Identifier) (int64, bool) {
	if ts, ok := id.Timestamp(); ok {
		return ts, true
	}
	n, _ := id.Position()
	if n < 0 || n >= len(s.order) {
		return 0, false
	}
	return s.order[len(s.order)-1-n], true
}

// Exists reports whether id currently addresses a stored checkpoint. Unlike
// Resolve, a timestamp identifier is also checked for an entry behind it.
func (s *Store) Exists(id models.Identifier) bool {
	ts, ok := s.Resolve(id)
	if !ok {
		return false
	}
	_, ok = s.byTS[ts]
	return ok
}

// Get returns the checkpoint addressed by id. Mutating the returned pointer
// mutates the store.
func (s *Store) Get(id models.Identifier) (*models.Checkpoint, bool) {
	ts, ok := s.Resolve(id)
	if !ok {
		return nil, false
	}
	cp, ok := s.byTS[ts]
	return cp, ok
}

// Remove deletes the checkpoint addressed by id and returns it. Positions of
// all newer checkpoints shift down by one afterwards.
func (s *Store) Remove(id models.Identifier) (models.Checkpoint, bool) {
	ts, ok := s.Resolve(id)
	if !ok {
		return models.Checkpoint{}, false
	}
	cp, ok := s.byTS[ts]
	if !ok {
		return models.Checkpoint{}, false
	}
	delete(s.byTS, ts)
	i, _ := slices.BinarySearch(s.order, ts)
	s.order = slices.Delete(s.order, i, i+1)
	return *cp, true
}

// SetTag rewrites the tag reference of the checkpoint addressed by id. It
// fails with apperr.ErrNotFound when id does not address a stored checkpoint.
func (s *Store) SetTag(id models.Identifier, tag models.TagID) error {
	cp, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("tracker: checkpoint %s: %w", id, apperr.ErrNotFound)
	}
	cp.Tag = tag
	return nil
}

// PositionOf returns the current position of the checkpoint stored at ts.
// The value is only good until the next mutation.
func (s *Store) PositionOf(ts int64) (int, bool) {
	i, ok := slices.BinarySearch(s.order, ts)
	if !ok {
		return 0, false
	}
	return len(s.order) - 1 - i, true
}

// Newest returns the largest stored timestamp.
func (s *Store) Newest() (int64, bool) {
	if len(s.order) == 0 {
		return 0, false
	}
	return s.order[len(s.order)-1], true
}

// DurationOf returns the gap in seconds between the checkpoint at ts and its
// chronological successor. The newest checkpoint has no successor yet; it
// reports false, as does a ts with no checkpoint at all.
func (s *Store) DurationOf(ts int64) (int64, bool) {
	if _, ok := s.byTS[ts]; !ok {
		return 0, false
	}
	i, _ := slices.BinarySearch(s.order, ts)
	if i+1 >= len(s.order) {
		return 0, false
	}
	return s.order[i+1] - ts, true
}

// All yields every checkpoint in chronological order.
func (s *Store) All() iter.Seq2[int64, *models.Checkpoint] {
	return func(yield func(int64, *models.Checkpoint) bool) {
		for _, ts := range s.order {
			if !yield(ts, s.byTS[ts]) {
				return
			}
		}
	}
}

// Range yields the checkpoints with start <= ts <= end in chronological
// order. Both bounds are inclusive; the sequence is restartable.
func (s *Store) Range(start, end int64) iter.Seq2[int64, *models.Checkpoint] {
	return func(yield func(int64, *models.Checkpoint) bool) {
		i, _ := slices.BinarySearch(s.order, start)
		for ; i < len(s.order) && s.order[i] <= end; i++ {
			if !yield(s.order[i], s.byTS[s.order[i]]) {
				return
			}
		}
	}
}

// Entry is a checkpoint joined with everything derived from its place in the
// ordering: its current position, its timestamp key and its duration.
type Entry struct {
	Position   int
	Timestamp  int64
	Checkpoint models.Checkpoint
	Duration   int64 // seconds until the next checkpoint; meaningless when Open
	Open       bool  // newest checkpoint, still running
}

// EntryAt returns the full entry for the checkpoint addressed by id.
func (s *Store) EntryAt(id models.Identifier) (Entry, bool) {
	ts, ok := s.Resolve(id)
	if !ok {
		return Entry{}, false
	}
	cp, ok := s.byTS[ts]
	if !ok {
		return Entry{}, false
	}
	return s.entryFor(ts, cp), true
}

// Entries returns the checkpoints with start <= ts <= end in chronological
// order. Durations are measured against the global successor even when it
// falls outside the window, so a window never truncates the last entry's
// duration; only the globally newest checkpoint is open.
func (s *Store) Entries(start, end int64) []Entry {
	var out []Entry
	for ts, cp := range s.Range(start, end) {
		out = append(out, s.entryFor(ts, cp))
	}
	return out
}

func (s *Store) entryFor(ts int64, cp *models.Checkpoint) Entry {
	e := Entry{Timestamp: ts, Checkpoint: *cp}
	e.Position, _ = s.PositionOf(ts)
	if d, ok := s.DurationOf(ts); ok {
		e.Duration = d
	} else {
		e.Open = true
	}
	return e
}

// MarshalJSON encodes the store as an object keyed by decimal timestamp,
// keys in ascending order so serialized databases stay diffable.
func (s *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ts := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatInt(ts, 10))
		buf.WriteString(`":`)
		body, err := json.Marshal(s.byTS[ts])
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the object form produced by MarshalJSON. Keys that
// do not parse as integers are rejected rather than skipped.
func (s *Store) UnmarshalJSON(data []byte) error {
	var raw map[string]models.Checkpoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.order = make([]int64, 0, len(raw))
	s.byTS = make(map[int64]*models.Checkpoint, len(raw))
	for key, cp := range raw {
		ts, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("tracker: checkpoint key %q: %w", key, err)
		}
		c := cp
		s.byTS[ts] = &c
		s.order = append(s.order, ts)
	}
	slices.Sort(s.order)
	return nil
}
