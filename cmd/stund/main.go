package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/viklund/stund/internal/cli"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := cli.New().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
