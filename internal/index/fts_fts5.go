//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS checkpoints_fts USING fts5(
			ts UNINDEXED,
			message,
			tag,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsClear(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM checkpoints_fts`); err != nil {
		return fmt.Errorf("index: clear fts: %w", err)
	}
	return nil
}

func ftsInsert(tx *sql.Tx, r Row) error {
	_, err := tx.Exec(`INSERT INTO checkpoints_fts (ts, message, tag) VALUES (?, ?, ?)`,
		r.Timestamp, r.Message, r.Tag)
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search over messages and tag names,
// best match first.
func (db *DB) Search(query string, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT ts, message, tag
		FROM checkpoints_fts
		WHERE checkpoints_fts MATCH ?
		ORDER BY rank, ts DESC
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanRows(rows)
}
