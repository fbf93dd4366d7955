package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-shipcard/internal/server"
)

// runServeCmd starts the HTTP API and blocks until a shutdown signal.
func runServeCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return wrapUsage(fmt.Errorf("unexpected arguments: %v", positional))
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Address = flags.addr
	}
	logger := newLogger(cfg, flags.common, env.Stderr)

	body := newRenderer(cfg, false)
	pages, err := newPageRenderer(cfg, body)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Loader:       newGitHubClient(cfg, body, logger),
		Renderer:     body,
		Pages:        pages,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("received shutdown signal")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("server stopped")
	return nil
}
