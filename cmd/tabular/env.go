package main

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/leengari/tabular/internal/config"
	"github.com/leengari/tabular/internal/domain/table"
	"github.com/leengari/tabular/internal/logging"
	"github.com/leengari/tabular/internal/render"
	"github.com/leengari/tabular/internal/storage"
)

// env is what every command needs: settings, a logger and its cleanup.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	close  func()
}

// setup loads the config file if one is given, applies flag overrides and
// starts logging.
func setup(c *cli.Command) (*env, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("seq-url") {
		cfg.Log.SeqURL = c.String("seq-url")
	}
	if c.IsSet("max-rows") {
		cfg.Render.MaxRows = c.Int("max-rows")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closeFn, err := logging.SetupLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, close: closeFn}, nil
}

func (e *env) load(path string) (*table.Table, error) {
	return storage.LoadFile(path, storage.Options{Delimiter: e.cfg.CSV.Rune()}, e.logger)
}

func (e *env) renderOptions() render.Options {
	return render.Options{MaxRows: e.cfg.Render.MaxRows}
}

func maxRowsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "max-rows",
		Usage: "rows to print before eliding; 0 prints all",
	}
}
