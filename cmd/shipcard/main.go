package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists every subcommand name.
var commands = []string{"render", "check", "serve", "version", "help"}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	for _, c := range commands {
		if s == c {
			return true
		}
	}
	return false
}

// runMain dispatches to a subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "go-shipcard %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "render":
		err = runRenderCmd(ctx, rest, env)
	case "check":
		err = runCheckCmd(ctx, rest, env)
	case "serve":
		err = runServeCmd(ctx, rest, env)
	}

	if err != nil {
		if errors.Is(err, errHelpShown) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}
