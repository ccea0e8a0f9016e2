package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func newInitCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create an empty checkpoint database",
		Action: func(ctx context.Context, _ *cli.Command) error {
			e, err := opts.environment()
			if err != nil {
				return err
			}
			if err := e.svc.Init(ctx); err != nil {
				return err
			}
			fmt.Fprintf(opts.stdout, "Created database %s\n", e.cfg.Database)
			return nil
		},
	}
}
