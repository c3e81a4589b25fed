package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Config is read from command-line flags only. The game has no config
// files and reads no environment variables.
type Config struct {
	Environment string
	LogLevel    slog.Level
	Debug       bool          // enables the dbg_ commands
	TypeDelay   time.Duration // per-rune delay for narration; 0 prints at once
	Width       int           // wrap width; 0 disables wrapping
	TUI         bool
	WorldFile   string // empty uses the embedded world
}

func Load(args []string) (*Config, error) {
	return load("visitor-center", args, io.Discard)
}

// LoadWithOutput is Load with usage and flag errors written to out.
func LoadWithOutput(name string, args []string, out io.Writer) (*Config, error) {
	return load(name, args, out)
}

func load(name string, args []string, out io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	cfg := &Config{}
	var level string
	fs.StringVar(&cfg.Environment, "env", "development", "environment: development or production (JSON logs)")
	fs.StringVar(&level, "log-level", "warn", "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug commands (dbg_setstate, dbg_items, dbg_state)")
	fs.DurationVar(&cfg.TypeDelay, "type-delay", 20*time.Millisecond, "delay between characters of narration")
	fs.IntVar(&cfg.Width, "width", 80, "wrap output at this many columns, 0 to disable")
	fs.BoolVar(&cfg.TUI, "tui", false, "run the full-screen terminal UI")
	fs.StringVar(&cfg.WorldFile, "world", "", "path to a world definition YAML file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.TypeDelay < 0 {
		return nil, fmt.Errorf("type-delay cannot be negative")
	}
	if cfg.Width < 0 {
		return nil, fmt.Errorf("width cannot be negative")
	}

	cfg.LogLevel = parseLogLevel(level)
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
