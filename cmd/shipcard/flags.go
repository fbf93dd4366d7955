package main

import (
	"errors"
	"io"

	flag "github.com/spf13/pflag"
)

// errHelpShown reports that -h printed usage and the command should stop.
var errHelpShown = errors.New("help shown")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// locationFlags place a local card inside a repository so relative
// image paths resolve.
type locationFlags struct {
	owner    string
	repo     string
	ref      string
	cardPath string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	at       locationFlags
	format   string
	output   string
	theme    string
	watch    bool
	width    int
	height   int
	noHilite bool
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common commonFlags
	owner  string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addLocationFlags adds repository location flags to a FlagSet.
func addLocationFlags(fs *flag.FlagSet, f *locationFlags) {
	fs.StringVar(&f.owner, "owner", "", "repository owner, also the default author")
	fs.StringVar(&f.repo, "repo", "", "repository name")
	fs.StringVar(&f.ref, "ref", "", "branch or tag for relative image paths (default: main)")
	fs.StringVar(&f.cardPath, "card-path", "", "card path inside the repository (default: .ishipped/card.md)")
}

func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.SortFlags = false
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs.Parse, mapping -h to errHelpShown and other failures to
// ErrUsage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelpShown
		}
		return wrapUsage(err)
	}
	return nil
}

func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)
	addCommonFlags(fs, &f.common)
	addLocationFlags(fs, &f.at)
	fs.StringVarP(&f.format, "format", "f", "json", "output format: json, html, page, png, pdf")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.theme, "theme", "", "page theme, overrides the card's theme")
	fs.BoolVarP(&f.watch, "watch", "w", false, "re-render when the input file changes")
	fs.IntVar(&f.width, "width", 0, "snapshot width in pixels (png)")
	fs.IntVar(&f.height, "height", 0, "snapshot height in pixels (png)")
	fs.BoolVar(&f.noHilite, "no-highlight", false, "disable code block highlighting")
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseCheckFlags(args []string, w io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newFlagSet("check", w, printCheckUsage)
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.owner, "owner", "", "repository owner for local files")
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", w, printServeUsage)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default: server.address)")
	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
