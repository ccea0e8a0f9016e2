package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/viklund/stund/internal/apperr"
	"github.com/viklund/stund/internal/report"
)

func newShowCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print all details of one checkpoint",
		ArgsUsage: "identifier",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("cli: show needs a position or @timestamp: %w", apperr.ErrInvalidIdentifier)
			}
			id, err := parseIdentifier(cmd.Args().First())
			if err != nil {
				return err
			}

			e, err := opts.environment()
			if err != nil {
				return err
			}

			entry, db, err := e.svc.Get(ctx, id)
			if err != nil {
				return err
			}

			report.Detail(opts.stdout, db, entry, e.loc)
			return nil
		},
	}
}
