package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathplay/internal/config"
	"github.com/abhisek/mathplay/internal/stats"
	"github.com/abhisek/mathplay/internal/store"
)

// env is what every command needs: settings, a logger and the tracker.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	tracker *stats.Tracker
	closers []io.Closer
}

// loadConfig reads the config file and env, then applies flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB, _ = flags.GetString("db")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("no-timer") {
		noTimer, _ := flags.GetBool("no-timer")
		cfg.Timer = !noTimer
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openEnv builds the environment. ephemeral keeps progress in memory only.
func openEnv(cmd *cobra.Command, ephemeral bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	e := &env{cfg: cfg}

	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	e.logger = logger
	if closer != nil {
		e.closers = append(e.closers, closer)
	}

	var kv store.KV = store.NewMemory()
	if !ephemeral {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.closers = append(e.closers, st)
		kv = st
		logger.Debug("store opened", "path", dbPath)
	}

	e.tracker = stats.New(kv, cfg.StorageKey, stats.WithLogger(logger))
	return e, nil
}

// Close releases the store and the log file.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

// resolveDBPath returns the database path using the configured value
// (--db flag or MATHPLAY_DB), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// newLogger writes text logs to the configured file, or stderr for "-".
// The TUI owns the terminal, so the default is a file.
func newLogger(lc config.LogConfig) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	if lc.File == "-" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil, nil
	}

	path := lc.File
	if path == "" {
		p, err := store.DefaultLogPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}
