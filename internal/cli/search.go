package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/viklund/stund/internal/index"
)

func newSearchCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Full-text search over checkpoint messages",
		ArgsUsage: "query...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of hits",
				Value:   20,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if query == "" {
				return fmt.Errorf("cli: search needs a query")
			}

			e, err := opts.environment()
			if err != nil {
				return err
			}

			db, err := e.store.Load()
			if err != nil {
				return err
			}

			idx, err := index.Open(e.cfg.Index)
			if err != nil {
				return err
			}
			defer idx.Close()

			if err := index.Sync(idx, db, e.logger); err != nil {
				return err
			}

			hits, err := idx.Search(query, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintln(opts.stdout, "No matches")
				return nil
			}

			for _, hit := range hits {
				when := time.Unix(hit.Timestamp, 0).In(e.loc).Format("2006-01-02 15:04")
				line := fmt.Sprintf("%s  %s", when, hit.Message)
				if hit.Tag != "" {
					line += fmt.Sprintf(" [%s]", hit.Tag)
				}
				if pos, ok := db.Checkpoints.PositionOf(hit.Timestamp); ok {
					fmt.Fprintf(opts.stdout, "%4d  %s\n", pos, line)
				} else {
					fmt.Fprintf(opts.stdout, "      %s\n", line)
				}
			}
			return nil
		},
	}
}
