package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/leengari/tabular/internal/domain/column"
	"github.com/leengari/tabular/internal/domain/data"
	"github.com/leengari/tabular/internal/query/grouping"
	"github.com/leengari/tabular/internal/query/relation"
	"github.com/leengari/tabular/internal/render"
	"github.com/leengari/tabular/internal/storage"
)

func showCMD() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a table, optionally ordered by an index",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "index",
				Usage: "key columns, primary first",
			},
			&cli.BoolFlag{
				Name:  "html",
				Usage: "write an HTML table instead of text",
			},
			maxRowsFlag(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := fileArg(c)
			if err != nil {
				return err
			}
			t, err := e.load(path)
			if err != nil {
				return err
			}

			frame := render.FromTable(t)
			if names := c.StringSlice("index"); len(names) > 0 {
				rel, err := relation.IndexBy(t, names...)
				if err != nil {
					return err
				}
				frame = rel.Frame()
			}
			if c.Bool("html") {
				return render.HTML(os.Stdout, frame, e.renderOptions())
			}
			return render.Text(os.Stdout, frame, e.renderOptions())
		},
	}
}

func groupsCMD() *cli.Command {
	return &cli.Command{
		Name:      "groups",
		Usage:     "Print a table split into groups of equal key",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "by",
				Usage:    "key columns",
				Required: true,
			},
			maxRowsFlag(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := fileArg(c)
			if err != nil {
				return err
			}
			t, err := e.load(path)
			if err != nil {
				return err
			}
			groups, err := grouping.New(t, c.StringSlice("by")...)
			if err != nil {
				return err
			}

			for key, tables := range groups.Items() {
				fmt.Printf("%s: %d rows\n", key, tables[0].Rows().Len())
				if err := render.Text(os.Stdout, render.FromTable(tables[0]), e.renderOptions()); err != nil {
					return err
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func lookupCMD() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Print the row holding a composite key",
		ArgsUsage: "FILE VALUE...",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "index",
				Usage:    "key columns, one VALUE per column",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := fileArg(c)
			if err != nil {
				return err
			}
			t, err := e.load(path)
			if err != nil {
				return err
			}
			rel, err := relation.IndexBy(t, c.StringSlice("index")...)
			if err != nil {
				return err
			}
			key, err := parseKey(rel.Index().Columns(), c.Args().Tail())
			if err != nil {
				return err
			}
			row, err := rel.Rows().Get(key)
			if err != nil {
				return err
			}
			return render.Row(os.Stdout, row)
		},
	}
}

func convertCMD() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Write a table to a Parquet file",
		ArgsUsage: "FILE OUT.parquet",
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			if c.NArg() != 2 {
				return fmt.Errorf("expected FILE and OUT arguments, got %d", c.NArg())
			}
			t, err := e.load(c.Args().Get(0))
			if err != nil {
				return err
			}

			out := c.Args().Get(1)
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := storage.WriteParquet(f, t); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			e.logger.Info("table written", "path", out, "rows", t.Rows().Len())
			return nil
		},
	}
}

// parseKey converts command-line text into values of the key columns'
// kinds.
func parseKey(cols []*column.Column, args []string) (data.Key, error) {
	if len(args) != len(cols) {
		return nil, fmt.Errorf("expected %d key values, got %d", len(cols), len(args))
	}
	key := make(data.Key, len(args))
	for i, s := range args {
		v, err := parseValue(cols[i].Kind(), s)
		if err != nil {
			return nil, fmt.Errorf("key value %d: %w", i+1, err)
		}
		key[i] = v
	}
	return key, nil
}

func parseValue(k column.Kind, s string) (any, error) {
	switch k {
	case column.Int:
		return strconv.ParseInt(s, 10, 64)
	case column.Float:
		return strconv.ParseFloat(s, 64)
	case column.Bool:
		return strconv.ParseBool(strings.ToLower(s))
	case column.Time:
		return storage.ParseTime(s)
	}
	return s, nil
}
