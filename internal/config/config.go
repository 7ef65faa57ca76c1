package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v2"
)

// Config holds settings for the tabular command.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Render RenderConfig `yaml:"render"`
	CSV    CSVConfig    `yaml:"csv"`
}

type LogConfig struct {
	Level  string `yaml:"level"`   // debug, info, warn or error
	SeqURL string `yaml:"seq_url"` // empty disables Seq
}

type RenderConfig struct {
	MaxRows int `yaml:"max_rows"` // zero prints every row
}

type CSVConfig struct {
	Delimiter string `yaml:"delimiter"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Render: RenderConfig{MaxRows: 32},
		CSV:    CSVConfig{Delimiter: ","},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Render.MaxRows < 0 {
		return fmt.Errorf("render.max_rows must not be negative, got %d", c.Render.MaxRows)
	}
	if utf8.RuneCountInString(c.CSV.Delimiter) > 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", l.Level)
}

// Rune returns the CSV field separator, ',' when unset.
func (c CSVConfig) Rune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}
