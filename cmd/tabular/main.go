package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := app().Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func app() *cli.Command {
	return &cli.Command{
		Name:  "tabular",
		Usage: "Inspect column-oriented tables from CSV, JSON and Parquet files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "seq-url",
				Usage: "Seq server URL for log shipping",
			},
		},
		Commands: []*cli.Command{
			showCMD(),
			groupsCMD(),
			lookupCMD(),
			convertCMD(),
		},
	}
}

func fileArg(c *cli.Command) (string, error) {
	path := c.Args().First()
	if path == "" {
		return "", fmt.Errorf("missing FILE argument")
	}
	return path, nil
}
