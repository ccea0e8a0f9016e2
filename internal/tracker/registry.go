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

// Registry holds the known tags keyed by id. Ids start at 1; 0 is the NoTag
// sentinel and is never allocated. Short names are unique.
type Registry struct {
	tags map[models.TagID]models.Tag
}

// NewRegistry returns an empty tag registry.
func NewRegistry() *Registry {
	return &Registry{tags: make(map[models.TagID]models.Tag)}
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	return len(r.tags)
}

// Add registers a new tag under the lowest unused id and returns that id.
// Ids freed by Remove are reused: a checkpoint still holding a removed tag's
// id rebinds to whatever tag is registered under that id next. Adding a
// short name that is already taken fails with apperr.ErrDuplicateTag.
func (r *Registry) Add(shortName, longName string) (models.TagID, error) {
	if _, _, ok := r.ByShortName(shortName); ok {
		return models.NoTag, fmt.Errorf("tracker: tag %q: %w", shortName, apperr.ErrDuplicateTag)
	}
	for id := models.TagID(1); id != 0; id++ {
		if _, taken := r.tags[id]; taken {
			continue
		}
		r.tags[id] = models.Tag{ShortName: shortName, LongName: longName}
		return id, nil
	}
	return models.NoTag, fmt.Errorf("tracker: tag %q: registry full", shortName)
}

// Remove deletes the tag with the given id and returns it. Checkpoints
// referencing the id are left alone; their references dangle and read as
// untagged until Add reuses the id.
func (r *Registry) Remove(id models.TagID) (models.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return models.Tag{}, fmt.Errorf("tracker: tag id %d: %w", id, apperr.ErrNotFound)
	}
	delete(r.tags, id)
	return tag, nil
}

// ByID looks a tag up by id. NoTag and unknown ids report false.
func (r *Registry) ByID(id models.TagID) (models.Tag, bool) {
	tag, ok := r.tags[id]
	return tag, ok
}

// ByShortName looks a tag up by its short name.
func (r *Registry) ByShortName(shortName string) (models.TagID, models.Tag, bool) {
	for id, tag := range r.tags {
		if tag.ShortName == shortName {
			return id, tag, true
		}
	}
	return models.NoTag, models.Tag{}, false
}

// All yields the tags in ascending id order.
func (r *Registry) All() iter.Seq2[models.TagID, models.Tag] {
	return func(yield func(models.TagID, models.Tag) bool) {
		ids := make([]models.TagID, 0, len(r.tags))
		for id := range r.tags {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			if !yield(id, r.tags[id]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the registry as an object keyed by decimal id, keys in
// ascending order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for id, tag := range r.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteByte('"')
		buf.WriteString(strconv.FormatUint(uint64(id), 10))
		buf.WriteString(`":`)
		body, err := json.Marshal(tag)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the object form produced by MarshalJSON. Keys must
// be integers in the valid id range; 0 is reserved and rejected.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var raw map[string]models.Tag
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.tags = make(map[models.TagID]models.Tag, len(raw))
	for key, tag := range raw {
		id, err := strconv.ParseUint(key, 10, 16)
		if err != nil {
			return fmt.Errorf("tracker: tag key %q: %w", key, err)
		}
		if id == 0 {
			return fmt.Errorf("tracker: tag key %q: id 0 is reserved", key)
		}
		r.tags[models.TagID(id)] = tag
	}
	return nil
}
