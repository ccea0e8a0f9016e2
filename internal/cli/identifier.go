package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viklund/stund/internal/apperr"
	"github.com/viklund/stund/internal/models"
)

// parseIdentifier turns a command line argument into a checkpoint address.
// A plain non-negative integer names a position (0 is the most recent
// checkpoint), "@" followed by an integer names a Unix timestamp, and the
// empty string defaults to position 0.
func parseIdentifier(arg string) (models.Identifier, error) {
	if arg == "" {
		return models.AtPosition(0), nil
	}

	if rest, ok := strings.CutPrefix(arg, "@"); ok {
		ts, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return models.Identifier{}, fmt.Errorf("cli: timestamp %q: %w", arg, apperr.ErrInvalidIdentifier)
		}
		return models.AtTimestamp(ts), nil
	}

	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 0 {
		return models.Identifier{}, fmt.Errorf("cli: position %q: %w", arg, apperr.ErrInvalidIdentifier)
	}
	return models.AtPosition(pos), nil
}
