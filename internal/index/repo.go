package index

import (
	"database/sql"
	"errors"
	"fmt"
)

// Row is one checkpoint as stored in (and returned from) the index. Tag
// holds the resolved short name, empty for untagged checkpoints.
type Row struct {
	Timestamp int64
	Message   string
	Tag       string
}

const checksumKey = "source_checksum"

// ReplaceAll swaps the index contents for rows within one transaction and
// records the source checksum the rebuild was based on.
func (db *DB) ReplaceAll(rows []Row, sum string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM checkpoints`); err != nil {
		return fmt.Errorf("index: clear: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO checkpoints (ts, message, tag) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.Exec(r.Timestamp, r.Message, r.Tag); err != nil {
			return fmt.Errorf("index: insert checkpoint: %w", err)
		}
		if err := ftsInsert(tx, r); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, checksumKey, sum); err != nil {
		return fmt.Errorf("index: record checksum: %w", err)
	}
	return tx.Commit()
}

// SourceChecksum returns the checksum recorded by the last rebuild, or the
// empty string when the index has never been built.
func (db *DB) SourceChecksum() (string, error) {
	var sum string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, checksumKey).Scan(&sum)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: read checksum: %w", err)
	}
	return sum, nil
}

// Count returns the number of indexed checkpoints.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM checkpoints`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Timestamp, &r.Message, &r.Tag); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
