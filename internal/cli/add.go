package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/viklund/stund/internal/report"
	"github.com/viklund/stund/internal/timeparse"
)

func newAddCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Record a checkpoint",
		ArgsUsage: "[message] [tag]",
		Description: "Records what you have been doing since the previous checkpoint.\n" +
			"Without --time the checkpoint is stamped with the current time.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "time",
				Aliases: []string{"t"},
				Usage:   "Checkpoint time: \"now\", \"15:04\", \"2006-01-02\" or \"2006-01-02 15:04\"",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := opts.environment()
			if err != nil {
				return err
			}

			at := e.now
			if expr := cmd.String("time"); expr != "" {
				at, err = timeparse.Parse(expr, e.now, timeparse.Defaults{Date: e.now, Clock: e.now})
				if err != nil {
					return err
				}
			}

			message := cmd.Args().Get(0)
			tag := cmd.Args().Get(1)

			entry, err := e.svc.Create(ctx, at.Unix(), message, tag)
			if err != nil {
				return err
			}

			when := time.Unix(entry.Timestamp, 0).In(e.loc).Format("2006-01-02 15:04")
			dur := report.OpenDuration
			if !entry.Open {
				dur = report.Hours(entry.Duration)
			}
			if tag != "" {
				fmt.Fprintf(opts.stdout, "Added checkpoint: %s (%sh): %s [%s]\n", when, dur, message, tag)
			} else {
				fmt.Fprintf(opts.stdout, "Added checkpoint: %s (%sh): %s\n", when, dur, message)
			}
			return nil
		},
	}
}
