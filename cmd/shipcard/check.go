package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/fileutil"
	"github.com/alnah/go-shipcard/internal/github"
)

// ErrCheckFailed reports that at least one checked card is invalid.
var ErrCheckFailed = errors.New("card check failed")

// codeReadFailed labels inputs that could not be read at all.
const codeReadFailed = "READ_FAILED"

// runCheckCmd parses every input and prints "ok" or an error code per line.
func runCheckCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: check needs at least one file or URL", ErrNoInput)
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, flags.common, env.Stderr)

	var gh *github.Client
	failed := 0
	for _, input := range positional {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if fileutil.IsURL(input) {
			if gh == nil {
				gh = newGitHubClient(cfg, newRenderer(cfg, true), logger)
			}
			err = checkRemote(ctx, gh, input)
		} else {
			err = checkLocal(input, flags.owner, env)
		}

		if err == nil {
			if !flags.common.quiet {
				fmt.Fprintf(env.Stdout, "%s: ok\n", input)
			}
			continue
		}
		failed++
		fmt.Fprintf(env.Stdout, "%s: %s\n", input, checkCode(err))
		logger.Debug("check failed", slog.String("input", input), slog.String("error", err.Error()))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d invalid", ErrCheckFailed, failed, len(positional))
	}
	return nil
}

func checkLocal(path, owner string, env *Environment) error {
	raw, err := readCard(path, env.Stdin)
	if err != nil {
		return err
	}
	_, err = shipcard.ParseCard(raw, owner)
	return err
}

func checkRemote(ctx context.Context, gh *github.Client, input string) error {
	target, err := github.ParseURL(input)
	if err != nil {
		return err
	}
	_, err = gh.Load(ctx, target)
	return err
}

// checkCode maps a check failure to the code printed for it.
func checkCode(err error) string {
	if code := shipcard.CodeOf(err); code != "" {
		return string(code)
	}
	if code := github.Code(err); code != "" {
		return code
	}
	return codeReadFailed
}
