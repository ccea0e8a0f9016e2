package models

import "strconv"

// Identifier addresses a checkpoint either by position or by timestamp.
//
// A position counts back from the most recent checkpoint: 0 is the newest,
// 1 the one before it, and so on. Positions are recomputed after every
// mutation and must never be stored. A timestamp is the stable Unix-seconds
// key the checkpoint lives under.
type Identifier struct {
	positional bool
	position   int
	timestamp  int64
}

// AtPosition addresses the n-th most recent checkpoint, counting from 0.
func AtPosition(n int) Identifier {
	return Identifier{positional: true, position: n}
}

// AtTimestamp addresses the checkpoint stored under the given Unix timestamp.
func AtTimestamp(ts int64) Identifier {
	return Identifier{timestamp: ts}
}

// Position returns the position and true when the identifier is positional.
func (id Identifier) Position() (int, bool) {
	return id.position, id.positional
}

// Timestamp returns the timestamp and true when the identifier is a
// timestamp reference.
func (id Identifier) Timestamp() (int64, bool) {
	return id.timestamp, !id.positional
}

// String renders the identifier the way the CLI accepts it, for error
// messages and logs.
func (id Identifier) String() string {
	if id.positional {
		return "position " + strconv.Itoa(id.position)
	}
	return "@" + strconv.FormatInt(id.timestamp, 10)
}
