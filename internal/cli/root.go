// Package cli implements the stund command line interface.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

// options carries the persistent flag values and the output/clock seams
// shared by every command.
type options struct {
	configPath string
	verbose    bool

	stdout io.Writer
	now    func() time.Time
}

// New builds the stund command tree.
func New() *cli.Command {
	return newRoot(os.Stdout, time.Now)
}

func newRoot(stdout io.Writer, now func() time.Time) *cli.Command {
	opts := &options{stdout: stdout, now: now}

	return &cli.Command{
		Name:  "stund",
		Usage: "Checkpoint based personal time tracking",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				Sources:     cli.EnvVars("STUND_CONFIG"),
				Destination: &opts.configPath,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "Enable debug logging",
				Destination: &opts.verbose,
			},
		},
		Commands: []*cli.Command{
			newInitCommand(opts),
			newAddCommand(opts),
			newRemoveCommand(opts),
			newShowCommand(opts),
			newLogCommand(opts),
			newEditCommand(opts),
			newTagsCommand(opts),
			newSearchCommand(opts),
			newConfigCommand(opts),
		},
	}
}
