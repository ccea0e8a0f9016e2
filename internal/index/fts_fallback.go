//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not compiled in; Search falls back to LIKE on the checkpoints table.
	return nil
}

func ftsClear(_ *sql.Tx) error { return nil }

func ftsInsert(_ *sql.Tx, _ Row) error { return nil }

// Search performs a LIKE-based search (fallback when FTS5 is not compiled
// in), newest first.
func (db *DB) Search(query string, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT ts, message, tag
		FROM checkpoints
		WHERE message LIKE ? OR tag LIKE ?
		ORDER BY ts DESC
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanRows(rows)
}
