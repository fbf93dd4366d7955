package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-shipcard/internal/config"
	"github.com/alnah/go-shipcard/internal/logging"
	"github.com/alnah/go-shipcard/internal/snapshot"
)

// Snapshotter captures a card page as PNG or PDF.
type Snapshotter interface {
	Capture(ctx context.Context, html string, opts snapshot.Options) ([]byte, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Snapshotter = (*snapshot.Renderer)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now            func() time.Time
	Stdout         io.Writer
	Stderr         io.Writer
	Stdin          io.Reader
	Getenv         func(string) string
	NewSnapshotter func(cfg config.SnapshotConfig) Snapshotter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:            time.Now,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Stdin:          os.Stdin,
		Getenv:         os.Getenv,
		NewSnapshotter: newSnapshotter,
	}
}

func newSnapshotter(cfg config.SnapshotConfig) Snapshotter {
	opts := []snapshot.Option{snapshot.WithTimeout(cfg.Timeout)}
	if cfg.BrowserBin != "" {
		opts = append(opts, snapshot.WithBrowserBin(cfg.BrowserBin))
	}
	return snapshot.New(opts...)
}

// loadConfig returns the named config, or defaults when name is empty,
// with environment overrides applied.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(env.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the diagnostics logger. Quiet silences it; verbose
// lowers the level to debug.
func newLogger(cfg *config.Config, f commonFlags, w io.Writer) *slog.Logger {
	level := cfg.Log.Level
	switch {
	case f.quiet:
		level = "none"
	case f.verbose:
		level = "debug"
	}
	return logging.New(w, level, cfg.Log.Format)
}
