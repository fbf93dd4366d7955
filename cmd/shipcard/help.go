package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: shipcard <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a card as JSON, HTML, a page, PNG or PDF")
	fmt.Fprintln(w, "  check      Validate cards and print ok or an error code")
	fmt.Fprintln(w, "  serve      Serve the card HTTP API")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'shipcard help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: shipcard render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a card.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Card file, GitHub URL, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <fmt>        json, html, page, png, pdf (default: json)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --theme <name>        default, ocean, forest, sunset, lavender, midnight, ruby")
	fmt.Fprintln(w, "      --width <px>          Snapshot width (png)")
	fmt.Fprintln(w, "      --height <px>         Snapshot height (png)")
	fmt.Fprintln(w, "      --no-highlight        Disable code block highlighting")
	fmt.Fprintln(w, "  -w, --watch               Re-render when the file changes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Local cards:")
	fmt.Fprintln(w, "      --owner <login>       Repository owner, also the default author")
	fmt.Fprintln(w, "      --repo <name>         Repository name")
	fmt.Fprintln(w, "      --ref <ref>           Branch or tag (default: main)")
	fmt.Fprintln(w, "      --card-path <path>    Card path in the repository (default: .ishipped/card.md)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: shipcard check <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse each card and print ok or its error code. Exits 5 if any card fails.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --owner <login>       Repository owner for local files")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: shipcard serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the card HTTP API.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default: server.address, :8080)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: shipcard version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: shipcard help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
