package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/viklund/stund/internal/config"
)

func newConfigCommand(opts *options) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or change the configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "database",
				Usage: "Set the checkpoint database path",
			},
			&cli.StringFlag{
				Name:  "index",
				Usage: "Set the search index path",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			if cmd.IsSet("database") || cmd.IsSet("index") {
				if cmd.IsSet("database") {
					cfg.Database = cmd.String("database")
				}
				if cmd.IsSet("index") {
					cfg.Index = cmd.String("index")
				}
				if err := cfg.Validate(); err != nil {
					return err
				}
				if err := config.Save(opts.configPath, cfg); err != nil {
					return err
				}
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(opts.stdout, "%s", data)
			return nil
		},
	}
}
