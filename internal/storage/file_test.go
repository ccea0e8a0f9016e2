package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/viklund/stund/internal/apperr"
	"github.com/viklund/stund/internal/models"
	"github.com/viklund/stund/internal/tracker"
)

func tempDB(t *testing.T) *File {
	t.Helper()
	f, err := NewFile(filepath.Join(t.TempDir(), "database.json"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return f
}

func TestLoadMissingDatabase(t *testing.T) {
	f := tempDB(t)
	if _, err := f.Load(); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Load: got %v, want ErrNotFound", err)
	}
}

func TestInitThenLoad(t *testing.T) {
	f := tempDB(t)
	if err := f.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	db, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if db.Checkpoints.Len() != 0 || db.Tags.Len() != 0 {
		t.Fatalf("Load: new database not empty: %d checkpoints, %d tags",
			db.Checkpoints.Len(), db.Tags.Len())
	}
}

func TestInitRefusesExisting(t *testing.T) {
	f := tempDB(t)
	if err := f.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := f.Init(); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("second Init: got %v, want ErrAlreadyExists", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := tempDB(t)
	db := tracker.NewDB()
	work, err := db.Tags.Add("w", "Work")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	db.Checkpoints.Insert(100, "write report", work)
	db.Checkpoints.Insert(200, "coffee", models.NoTag)

	if err := f.Save(db); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Checkpoints.Len() != 2 || got.Tags.Len() != 1 {
		t.Fatalf("Load: got %d checkpoints, %d tags", got.Checkpoints.Len(), got.Tags.Len())
	}
	cp, ok := got.Checkpoints.Get(models.AtTimestamp(100))
	if !ok || cp.Message != "write report" || cp.Tag != work {
		t.Fatalf("Load: checkpoint 100 = %+v", cp)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	f := tempDB(t)
	if err := os.WriteFile(f.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := f.Load(); err == nil {
		t.Fatal("Load: malformed database must not load")
	}
}

func TestLoadRejectsMissingSections(t *testing.T) {
	f := tempDB(t)
	if err := os.WriteFile(f.Path(), []byte(`{"checkpoints":{}}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := f.Load(); err == nil {
		t.Fatal("Load: database without a tags section must not load")
	}
}

func TestSaveAtomicNoLeftovers(t *testing.T) {
	f := tempDB(t)
	if err := f.Save(tracker.NewDB()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	db := tracker.NewDB()
	db.Checkpoints.Insert(100, "x", models.NoTag)
	if err := f.Save(db); err != nil {
		t.Fatalf("Save: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(f.Path()), ".stund-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "a", "b", "database.json"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := f.Save(tracker.NewDB()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := f.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
