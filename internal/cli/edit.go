package cli

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/viklund/stund/internal/models"
	"github.com/viklund/stund/internal/report"
	"github.com/viklund/stund/internal/timelog"
	"github.com/viklund/stund/internal/timeparse"
)

func newEditCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Change a checkpoint's time, message or tag",
		ArgsUsage: "[identifier]",
		Description: "Edits the checkpoint at the given position (0, the default, is the\n" +
			"most recent one) or at the given @timestamp. Partial --time values\n" +
			"keep the checkpoint's own date or clock for the missing part.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "time",
				Aliases: []string{"t"},
				Usage:   "New checkpoint time: \"now\", \"15:04\", \"2006-01-02\" or \"2006-01-02 15:04\"",
			},
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "New message",
			},
			&cli.BoolFlag{
				Name:  "no-message",
				Usage: "Clear the message",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "New tag (short name)",
			},
			&cli.BoolFlag{
				Name:  "no-tag",
				Usage: "Clear the tag",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := parseIdentifier(cmd.Args().First())
			if err != nil {
				return err
			}

			e, err := opts.environment()
			if err != nil {
				return err
			}

			current, _, err := e.svc.Get(ctx, id)
			if err != nil {
				return err
			}

			var changes timelog.Changes
			if expr := cmd.String("time"); expr != "" {
				at := time.Unix(current.Timestamp, 0).In(e.loc)
				parsed, err := timeparse.Parse(expr, e.now, timeparse.Defaults{Date: at, Clock: at})
				if err != nil {
					return err
				}
				ts := parsed.Unix()
				changes.Timestamp = &ts
			}
			if cmd.IsSet("message") {
				msg := cmd.String("message")
				changes.Message = &msg
			}
			changes.ClearMessage = cmd.Bool("no-message")
			if cmd.IsSet("tag") {
				tag := cmd.String("tag")
				changes.Tag = &tag
			}
			changes.ClearTag = cmd.Bool("no-tag")

			entry, db, err := e.svc.Update(ctx, models.AtTimestamp(current.Timestamp), changes)
			if err != nil {
				return err
			}

			report.Detail(opts.stdout, db, entry, e.loc)
			return nil
		},
	}
}
