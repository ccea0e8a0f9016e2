package tracker

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/viklund/stund/internal/apperr"
	"github.com/viklund/stund/internal/models"
)

func seeded(t *testing.T) (*Store, models.TagID) {
	t.Helper()
	s := NewStore()
	work := models.TagID(1)
	s.Insert(100, "work", work)
	s.Insert(200, "break", models.NoTag)
	s.Insert(300, "work", work)
	return s, work
}

func TestStoreInsertKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Insert(300, "third", models.NoTag)
	s.Insert(100, "first", models.NoTag)
	s.Insert(200, "second", models.NoTag)

	var got []int64
	for ts := range s.All() {
		got = append(got, ts)
	}
	want := []int64{100, 200, 300}
	if len(got) != len(want) {
		t.Fatalf("All: got %d timestamps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStoreInsertOverwritesEqualTimestamp(t *testing.T) {
	s := NewStore()
	s.Insert(100, "first", models.NoTag)
	s.Insert(100, "second", models.TagID(2))

	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}
	cp, ok := s.Get(models.AtTimestamp(100))
	if !ok {
		t.Fatal("Get: checkpoint missing")
	}
	if cp.Message != "second" || cp.Tag != models.TagID(2) {
		t.Fatalf("Get: got %+v, want the later write", cp)
	}
}

func TestStoreDurations(t *testing.T) {
	s, _ := seeded(t)

	if d, ok := s.DurationOf(100); !ok || d != 100 {
		t.Fatalf("DurationOf(100): got %d,%v, want 100,true", d, ok)
	}
	if d, ok := s.DurationOf(200); !ok || d != 100 {
		t.Fatalf("DurationOf(200): got %d,%v, want 100,true", d, ok)
	}
	if _, ok := s.DurationOf(300); ok {
		t.Fatal("DurationOf(300): newest checkpoint must have no duration")
	}
	if _, ok := s.DurationOf(150); ok {
		t.Fatal("DurationOf(150): no checkpoint stored there")
	}
}

func TestStoreResolvePositions(t *testing.T) {
	s, _ := seeded(t)

	cases := []struct {
		pos  int
		want int64
	}{
		{0, 300},
		{1, 200},
		{2, 100},
	}
	for _, c := range cases {
		ts, ok := s.Resolve(models.AtPosition(c.pos))
		if !ok || ts != c.want {
			t.Fatalf("Resolve(position %d): got %d,%v, want %d,true", c.pos, ts, ok, c.want)
		}
	}
	if _, ok := s.Resolve(models.AtPosition(3)); ok {
		t.Fatal("Resolve(position 3): out of range position must not resolve")
	}
	if _, ok := s.Resolve(models.AtPosition(-1)); ok {
		t.Fatal("Resolve(position -1): negative position must not resolve")
	}
}

func TestStoreResolveTimestampPassesThrough(t *testing.T) {
	s, _ := seeded(t)

	ts, ok := s.Resolve(models.AtTimestamp(12345))
	if !ok || ts != 12345 {
		t.Fatalf("Resolve(@12345): got %d,%v, want passthrough", ts, ok)
	}
	if _, ok := s.Get(models.AtTimestamp(12345)); ok {
		t.Fatal("Get(@12345): nothing stored there")
	}
}

func TestStoreExists(t *testing.T) {
	s, _ := seeded(t)

	if !s.Exists(models.AtTimestamp(200)) {
		t.Fatal("Exists(@200): stored checkpoint must exist")
	}
	if s.Exists(models.AtTimestamp(12345)) {
		t.Fatal("Exists(@12345): resolution alone is not existence")
	}
	if !s.Exists(models.AtPosition(2)) {
		t.Fatal("Exists(position 2): in-range position must exist")
	}
	if s.Exists(models.AtPosition(3)) {
		t.Fatal("Exists(position 3): out of range")
	}
}

func TestStoreSetTag(t *testing.T) {
	s, _ := seeded(t)

	if err := s.SetTag(models.AtPosition(1), models.TagID(7)); err != nil {
		t.Fatalf("SetTag: %v", err)
	}
	cp, _ := s.Get(models.AtTimestamp(200))
	if cp.Tag != models.TagID(7) {
		t.Fatalf("SetTag: tag = %d, want 7", cp.Tag)
	}

	err := s.SetTag(models.AtTimestamp(12345), models.TagID(1))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("SetTag: got %v, want ErrNotFound", err)
	}
}

func TestStoreRemoveShiftsPositions(t *testing.T) {
	s, _ := seeded(t)

	cp, ok := s.Remove(models.AtPosition(1))
	if !ok {
		t.Fatal("Remove: position 1 must resolve")
	}
	if cp.Message != "break" {
		t.Fatalf("Remove: got %q, want the middle checkpoint", cp.Message)
	}

	// position 1 now addresses what used to be position 2
	ts, ok := s.Resolve(models.AtPosition(1))
	if !ok || ts != 100 {
		t.Fatalf("Resolve after remove: got %d,%v, want 100,true", ts, ok)
	}
	// and the gap closes: 100 now runs until 300
	if d, ok := s.DurationOf(100); !ok || d != 200 {
		t.Fatalf("DurationOf(100) after remove: got %d,%v, want 200,true", d, ok)
	}
}

func TestStoreRemoveNewestPromotesSuccessor(t *testing.T) {
	s, _ := seeded(t)

	cp, ok := s.Remove(models.AtPosition(0))
	if !ok || cp.Message != "work" {
		t.Fatalf("Remove: got %+v,%v, want the newest checkpoint", cp, ok)
	}

	// the former position 1 now answers to position 0
	ts, ok := s.Resolve(models.AtPosition(0))
	if !ok || ts != 200 {
		t.Fatalf("Resolve(position 0) after remove: got %d,%v, want 200,true", ts, ok)
	}
	// and it became the open interval
	if _, ok := s.DurationOf(200); ok {
		t.Fatal("DurationOf(200): promoted checkpoint must be open")
	}
}

func TestStoreRange(t *testing.T) {
	s, _ := seeded(t)

	collect := func() []int64 {
		var got []int64
		for ts := range s.Range(100, 200) {
			got = append(got, ts)
		}
		return got
	}

	got := collect()
	if len(got) != 2 || got[0] != 100 || got[1] != 200 {
		t.Fatalf("Range(100, 200): got %v, want [100 200]", got)
	}
	// restartable: a second pass yields the same sequence
	if again := collect(); len(again) != len(got) {
		t.Fatalf("Range: second pass got %v", again)
	}

	// early break stops the walk without side effects
	for ts := range s.Range(100, 300) {
		if ts > 100 {
			t.Fatalf("Range: break ignored, got %d", ts)
		}
		break
	}
}

func TestStoreEntriesWindow(t *testing.T) {
	s, _ := seeded(t)

	entries := s.Entries(100, 200)
	if len(entries) != 2 {
		t.Fatalf("Entries: got %d, want 2", len(entries))
	}
	// the successor of 200 lies outside the window but still bounds its duration
	if entries[1].Timestamp != 200 || entries[1].Duration != 100 || entries[1].Open {
		t.Fatalf("Entries[1]: got %+v, want closed duration 100", entries[1])
	}
	// positions are global, not window relative
	if entries[0].Position != 2 || entries[1].Position != 1 {
		t.Fatalf("Entries positions: got %d,%d, want 2,1", entries[0].Position, entries[1].Position)
	}
}

func TestStoreEntriesEmptyWindow(t *testing.T) {
	s, _ := seeded(t)

	if entries := s.Entries(400, 500); len(entries) != 0 {
		t.Fatalf("Entries: got %d entries from an empty window", len(entries))
	}
}

func TestStoreEntryAtOpenCheckpoint(t *testing.T) {
	s, _ := seeded(t)

	e, ok := s.EntryAt(models.AtPosition(0))
	if !ok {
		t.Fatal("EntryAt: position 0 must resolve")
	}
	if !e.Open || e.Timestamp != 300 || e.Position != 0 {
		t.Fatalf("EntryAt: got %+v, want the open newest entry", e)
	}
}

func TestStoreJSONRoundTrip(t *testing.T) {
	s, _ := seeded(t)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"100":{"message":"work","tag":1},"200":{"message":"break"},"300":{"message":"work","tag":1}}`
	if string(data) != want {
		t.Fatalf("Marshal: got %s, want %s", data, want)
	}

	got := NewStore()
	if err := json.Unmarshal(data, got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Len() != s.Len() {
		t.Fatalf("round trip: got %d checkpoints, want %d", got.Len(), s.Len())
	}
	cp, ok := got.Get(models.AtTimestamp(200))
	if !ok || cp.Tag != models.NoTag || cp.Message != "break" {
		t.Fatalf("round trip: checkpoint 200 got %+v", cp)
	}
}

func TestStoreUnmarshalRejectsBadKey(t *testing.T) {
	s := NewStore()
	if err := json.Unmarshal([]byte(`{"not-a-number":{"message":"x"}}`), s); err == nil {
		t.Fatal("Unmarshal: non-numeric key must be rejected")
	}
}

func TestStoreMarshalOrdersNegativeTimestamps(t *testing.T) {
	s := NewStore()
	s.Insert(50, "after the epoch", models.NoTag)
	s.Insert(-100, "before the epoch", models.NoTag)
	s.Insert(0, "the epoch", models.NoTag)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"-100":{"message":"before the epoch"},"0":{"message":"the epoch"},"50":{"message":"after the epoch"}}`
	if string(data) != want {
		t.Fatalf("Marshal: got %s, want %s", data, want)
	}
}
