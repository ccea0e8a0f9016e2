package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
)

func newRemoveCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove a checkpoint",
		ArgsUsage: "[identifier]",
		Description: "Removes the checkpoint at the given position (0, the default, is\n" +
			"the most recent one) or at the given @timestamp.",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := opts.environment()
			if err != nil {
				return err
			}

			id, err := parseIdentifier(cmd.Args().First())
			if err != nil {
				return err
			}

			entry, db, err := e.svc.Delete(ctx, id)
			if err != nil {
				return err
			}

			when := time.Unix(entry.Timestamp, 0).In(e.loc).Format("2006-01-02 15:04")
			if tag, ok := db.TagOf(entry.Checkpoint); ok {
				fmt.Fprintf(opts.stdout, "Removed checkpoint: %s: %s [%s]\n", when, entry.Checkpoint.Message, tag.ShortName)
			} else {
				fmt.Fprintf(opts.stdout, "Removed checkpoint: %s: %s\n", when, entry.Checkpoint.Message)
			}
			return nil
		},
	}
}
