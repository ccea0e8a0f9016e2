// Package timelog implements the operations the CLI exposes. Each mutating
// method loads the database, applies exactly one logical change and writes
// the database back before returning; read-only methods never write. A
// failed operation returns before any write happens, so the persisted state
// is either the old database or the new one, never something in between.
package timelog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viklund/stund/internal/apperr"
	"github.com/viklund/stund/internal/models"
	"github.com/viklund/stund/internal/storage"
	"github.com/viklund/stund/internal/tracker"
)

// TagEntry pairs a tag with its registry id for listings.
type TagEntry struct {
	ID  models.TagID
	Tag models.Tag
}

// View is a window over the database: the entries in range plus the
// database they came from, for tag resolution during rendering.
type View struct {
	DB      *tracker.DB
	Entries []tracker.Entry
}

// Changes describes an edit. Nil pointers leave the field unchanged; the
// Clear flags reset a field and conflict with the matching pointer.
type Changes struct {
	Timestamp    *int64
	Message      *string
	ClearMessage bool
	Tag          *string // tag short name
	ClearTag     bool
}

// Service coordinates the persisted database and the core mutations.
type Service struct {
	store  storage.Provider
	logger *slog.Logger
}

// Option is a functional option for configuring the service.
type Option func(*Service)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service on top of store.
func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init creates a fresh empty database.
func (s *Service) Init(_ context.Context) error {
	if err := s.store.Init(); err != nil {
		return err
	}
	s.logger.Debug("database created")
	return nil
}

// Create records a checkpoint at ts. tagShort may be empty for an untagged
// checkpoint; otherwise it must name a registered tag. Recording at an
// occupied timestamp overwrites the previous checkpoint.
func (s *Service) Create(_ context.Context, ts int64, message, tagShort string) (tracker.Entry, error) {
	db, err := s.store.Load()
	if err != nil {
		return tracker.Entry{}, err
	}
	tag := models.NoTag
	if tagShort != "" {
		id, _, ok := db.Tags.ByShortName(tagShort)
		if !ok {
			return tracker.Entry{}, fmt.Errorf("timelog: tag %q: %w", tagShort, apperr.ErrUnknownTag)
		}
		tag = id
	}
	db.Checkpoints.Insert(ts, message, tag)
	if err := s.store.Save(db); err != nil {
		return tracker.Entry{}, err
	}
	s.logger.Debug("checkpoint added", slog.Int64("timestamp", ts))
	e, _ := db.Checkpoints.EntryAt(models.AtTimestamp(ts))
	return e, nil
}

// Get returns the entry addressed by id, along with the database it came
// from for tag resolution.
func (s *Service) Get(_ context.Context, id models.Identifier) (tracker.Entry, *tracker.DB, error) {
	db, err := s.store.Load()
	if err != nil {
		return tracker.Entry{}, nil, err
	}
	e, ok := db.Checkpoints.EntryAt(id)
	if !ok {
		return tracker.Entry{}, nil, fmt.Errorf("timelog: checkpoint %s: %w", id, apperr.ErrNotFound)
	}
	return e, db, nil
}

// Delete removes the checkpoint addressed by id and returns it as it stood
// at removal time. Positions of newer checkpoints shift down afterwards.
func (s *Service) Delete(_ context.Context, id models.Identifier) (tracker.Entry, *tracker.DB, error) {
	db, err := s.store.Load()
	if err != nil {
		return tracker.Entry{}, nil, err
	}
	e, ok := db.Checkpoints.EntryAt(id)
	if !ok {
		return tracker.Entry{}, nil, fmt.Errorf("timelog: checkpoint %s: %w", id, apperr.ErrNotFound)
	}
	db.Checkpoints.Remove(models.AtTimestamp(e.Timestamp))
	if err := s.store.Save(db); err != nil {
		return tracker.Entry{}, nil, err
	}
	s.logger.Debug("checkpoint removed", slog.Int64("timestamp", e.Timestamp))
	return e, db, nil
}

// Update applies ch to the checkpoint addressed by id. Changing the
// timestamp re-keys the checkpoint: remove plus reinsert under the new key,
// overwriting whatever already sat there. All later edits in the same call
// address the new key, since the move may have shifted every position.
func (s *Service) Update(_ context.Context, id models.Identifier, ch Changes) (tracker.Entry, *tracker.DB, error) {
	if ch.Message != nil && ch.ClearMessage {
		return tracker.Entry{}, nil, fmt.Errorf("timelog: message edit: %w", apperr.ErrConflictingFlags)
	}
	if ch.Tag != nil && ch.ClearTag {
		return tracker.Entry{}, nil, fmt.Errorf("timelog: tag edit: %w", apperr.ErrConflictingFlags)
	}

	db, err := s.store.Load()
	if err != nil {
		return tracker.Entry{}, nil, err
	}
	if !db.Checkpoints.Exists(id) {
		return tracker.Entry{}, nil, fmt.Errorf("timelog: checkpoint %s: %w", id, apperr.ErrNotFound)
	}
	ts, _ := db.Checkpoints.Resolve(id)

	if ch.Timestamp != nil && *ch.Timestamp != ts {
		moved, _ := db.Checkpoints.Remove(models.AtTimestamp(ts))
		db.Checkpoints.Insert(*ch.Timestamp, moved.Message, moved.Tag)
		ts = *ch.Timestamp
	}
	handle := models.AtTimestamp(ts)
	cp, _ := db.Checkpoints.Get(handle)
	if ch.Message != nil {
		cp.Message = *ch.Message
	}
	if ch.ClearMessage {
		cp.Message = ""
	}
	if ch.Tag != nil {
		tagID, _, ok := db.Tags.ByShortName(*ch.Tag)
		if !ok {
			return tracker.Entry{}, nil, fmt.Errorf("timelog: tag %q: %w", *ch.Tag, apperr.ErrUnknownTag)
		}
		if err := db.Checkpoints.SetTag(handle, tagID); err != nil {
			return tracker.Entry{}, nil, err
		}
	}
	if ch.ClearTag {
		if err := db.Checkpoints.SetTag(handle, models.NoTag); err != nil {
			return tracker.Entry{}, nil, err
		}
	}

	if err := s.store.Save(db); err != nil {
		return tracker.Entry{}, nil, err
	}
	s.logger.Debug("checkpoint updated", slog.Int64("timestamp", ts))
	e, _ := db.Checkpoints.EntryAt(handle)
	return e, db, nil
}

// List returns the entries with start <= timestamp <= end, optionally
// filtered down to one tag's checkpoints.
func (s *Service) List(_ context.Context, start, end int64, filterTag string) (View, error) {
	db, err := s.store.Load()
	if err != nil {
		return View{}, err
	}
	entries := db.Checkpoints.Entries(start, end)
	if filterTag != "" {
		id, _, ok := db.Tags.ByShortName(filterTag)
		if !ok {
			return View{}, fmt.Errorf("timelog: tag %q: %w", filterTag, apperr.ErrUnknownTag)
		}
		var filtered []tracker.Entry
		for _, e := range entries {
			if e.Checkpoint.Tag == id {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	return View{DB: db, Entries: entries}, nil
}

// Tags returns the registered tags in ascending id order.
func (s *Service) Tags(_ context.Context) ([]TagEntry, error) {
	db, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	out := make([]TagEntry, 0, db.Tags.Len())
	for id, tag := range db.Tags.All() {
		out = append(out, TagEntry{ID: id, Tag: tag})
	}
	return out, nil
}

// CreateTag registers a tag and returns its id. Short names must be a
// single non-empty word; anything else could never be referenced from the
// command line.
func (s *Service) CreateTag(_ context.Context, shortName, longName string) (models.TagID, error) {
	if shortName == "" || strings.ContainsAny(shortName, " \t") {
		return models.NoTag, fmt.Errorf("timelog: tag short name %q must be a single non-empty word", shortName)
	}
	db, err := s.store.Load()
	if err != nil {
		return models.NoTag, err
	}
	id, err := db.Tags.Add(shortName, longName)
	if err != nil {
		return models.NoTag, err
	}
	if err := s.store.Save(db); err != nil {
		return models.NoTag, err
	}
	s.logger.Debug("tag added", slog.String("short_name", shortName), slog.Int("id", int(id)))
	return id, nil
}

// DeleteTag removes the tag named by shortName. Checkpoints keep their
// references; they read as untagged from then on.
func (s *Service) DeleteTag(_ context.Context, shortName string) (models.Tag, error) {
	db, err := s.store.Load()
	if err != nil {
		return models.Tag{}, err
	}
	id, _, ok := db.Tags.ByShortName(shortName)
	if !ok {
		return models.Tag{}, fmt.Errorf("timelog: tag %q: %w", shortName, apperr.ErrNotFound)
	}
	tag, err := db.Tags.Remove(id)
	if err != nil {
		return models.Tag{}, err
	}
	if err := s.store.Save(db); err != nil {
		return models.Tag{}, err
	}
	s.logger.Debug("tag removed", slog.String("short_name", shortName))
	return tag, nil
}
