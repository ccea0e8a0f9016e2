package index

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/viklund/stund/internal/checksum"
	"github.com/viklund/stund/internal/tracker"
)

// Sync brings the index in line with the tracker database. The database is
// small enough that sync is a full rebuild; it is skipped when the source
// checksum matches the one recorded at the last rebuild.
func Sync(db *DB, source *tracker.DB, logger *slog.Logger) error {
	data, err := json.Marshal(source)
	if err != nil {
		return fmt.Errorf("index: encode source: %w", err)
	}
	sum := checksum.Sum(data)

	stored, err := db.SourceChecksum()
	if err != nil {
		return err
	}
	if stored == sum {
		logger.Debug("sync: index up to date")
		return nil
	}

	rows := make([]Row, 0, source.Checkpoints.Len())
	for ts, cp := range source.Checkpoints.All() {
		tag, _ := source.TagOf(*cp)
		rows = append(rows, Row{Timestamp: ts, Message: cp.Message, Tag: tag.ShortName})
	}
	if err := db.ReplaceAll(rows, sum); err != nil {
		return err
	}
	logger.Debug("sync: index rebuilt", slog.Int("checkpoints", len(rows)))
	return nil
}
