package index

// CheckpointIndex defines the search index operations. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type CheckpointIndex interface {
	ReplaceAll(rows []Row, sum string) error
	SourceChecksum() (string, error)
	Search(query string, limit int) ([]Row, error)
	Count() (int, error)
	Close() error
}

// Verify *DB satisfies CheckpointIndex at compile time.
var _ CheckpointIndex = (*DB)(nil)
