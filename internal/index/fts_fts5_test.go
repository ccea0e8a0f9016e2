//go:build sqlite_fts5

package index

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM checkpoints_fts`).Scan(&count); err != nil {
		t.Fatalf("checkpoints_fts table missing: %v", err)
	}
}

func TestFTS5_SearchMatchesTagColumn(t *testing.T) {
	db := testDB(t)
	rows := []Row{
		{Timestamp: 100, Message: "reviewing the deploy", Tag: "ops"},
		{Timestamp: 200, Message: "lunch", Tag: ""},
	}
	if err := db.ReplaceAll(rows, "s"); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	hits, err := db.Search("ops", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Timestamp != 100 {
		t.Fatalf("Search: got %+v, want the tagged checkpoint", hits)
	}
}

func TestFTS5_ReplaceAllClearsFTS(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceAll([]Row{{Timestamp: 100, Message: "vanishing content"}}, "s1")
	_ = db.ReplaceAll([]Row{{Timestamp: 200, Message: "other"}}, "s2")

	hits, _ := db.Search("vanishing", 10)
	if len(hits) != 0 {
		t.Errorf("Search: stale FTS rows survived a rebuild: %+v", hits)
	}
}
