package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func newTagsCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:  "tags",
		Usage: "List and manage tags",
		Action: func(ctx context.Context, _ *cli.Command) error {
			e, err := opts.environment()
			if err != nil {
				return err
			}

			tags, err := e.svc.Tags(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(opts.stdout, "Tags:")
			for _, t := range tags {
				fmt.Fprintf(opts.stdout, "%d: %s - %s\n", t.ID, t.Tag.ShortName, t.Tag.LongName)
			}
			return nil
		},
		Commands: []*cli.Command{
			newTagsAddCommand(opts),
			newTagsRemoveCommand(opts),
		},
	}
}

func newTagsAddCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Register a new tag",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "short",
				Aliases:  []string{"s"},
				Usage:    "Short name used when tagging checkpoints",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "long",
				Aliases:  []string{"l"},
				Usage:    "Long descriptive name",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := opts.environment()
			if err != nil {
				return err
			}

			short, long := cmd.String("short"), cmd.String("long")
			id, err := e.svc.CreateTag(ctx, short, long)
			if err != nil {
				return err
			}

			fmt.Fprintf(opts.stdout, "Added tag %d: %s - %s\n", id, short, long)
			return nil
		},
	}
}

func newTagsRemoveCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:  "rm",
		Usage: "Remove a tag",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "short",
				Aliases:  []string{"s"},
				Usage:    "Short name of the tag to remove",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := opts.environment()
			if err != nil {
				return err
			}

			tag, err := e.svc.DeleteTag(ctx, cmd.String("short"))
			if err != nil {
				return err
			}

			fmt.Fprintf(opts.stdout, "Removed tag: %s - %s\n", tag.ShortName, tag.LongName)
			return nil
		},
	}
}
