package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/viklund/stund/internal/apperr"
	"github.com/viklund/stund/internal/report"
	"github.com/viklund/stund/internal/timeparse"
)

func newLogCommand(opts *options) *cli.Command {
	var verbosity int

	return &cli.Command{
		Name:      "log",
		Usage:     "List checkpoints in a time window",
		ArgsUsage: "[days]",
		Description: "Without arguments the window is today. A days argument widens it\n" +
			"that many days into the past, --back shifts it, and --start/--end\n" +
			"pin the bounds explicitly.",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "back",
				Aliases: []string{"b"},
				Usage:   "Shift the window this many days into the past",
			},
			&cli.StringFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Window start: \"now\", \"15:04\", \"2006-01-02\" or \"2006-01-02 15:04\"",
			},
			&cli.StringFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "Window end, same forms as --start",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Only include checkpoints with this tag",
			},
			&cli.BoolFlag{
				Name:   "v",
				Usage:  "Verbosity: -v totals only, -vv daily stats, -vvv full table (default)",
				Config: cli.BoolConfig{Count: &verbosity},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := opts.environment()
			if err != nil {
				return err
			}

			days := 0
			if arg := cmd.Args().First(); arg != "" {
				days, err = strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("cli: days %q: %w", arg, err)
				}
			}

			startExpr := cmd.String("start")
			endExpr := cmd.String("end")
			if (cmd.Args().Len() > 0 || cmd.IsSet("back")) && (startExpr != "" || endExpr != "") {
				return fmt.Errorf("cli: days/--back cannot be combined with --start/--end: %w", apperr.ErrConflictingFlags)
			}

			back := int(cmd.Int("back"))
			end := timeparse.DayEnd(e.now.AddDate(0, 0, -back))
			if endExpr != "" {
				end, err = timeparse.Parse(endExpr, e.now, timeparse.Defaults{Date: e.now, Clock: timeparse.DayEnd(e.now)})
				if err != nil {
					return err
				}
			}
			start := timeparse.DayStart(end.AddDate(0, 0, -days))
			if startExpr != "" {
				start, err = timeparse.Parse(startExpr, e.now, timeparse.Defaults{Date: e.now, Clock: timeparse.DayStart(e.now)})
				if err != nil {
					return err
				}
			}

			filter := cmd.String("filter")
			view, err := e.svc.List(ctx, start.Unix(), end.Unix(), filter)
			if err != nil {
				return err
			}

			report.Render(opts.stdout, view.DB, view.Entries, report.Options{
				Verbosity: verbosity,
				Start:     start,
				End:       end,
				Filter:    filter,
				Location:  e.loc,
			})
			return nil
		},
	}
}
