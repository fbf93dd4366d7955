package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/config"
	"github.com/alnah/go-shipcard/internal/fileutil"
	"github.com/alnah/go-shipcard/internal/github"
	"github.com/alnah/go-shipcard/internal/snapshot"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrReadCard      = errors.New("failed to read card")
	ErrWriteOutput   = errors.New("failed to write output")
	ErrUnknownFormat = errors.New("unknown output format")
)

// Output formats for the render command.
const (
	formatJSON = "json"
	formatHTML = "html"
	formatPage = "page"
	formatPNG  = "png"
	formatPDF  = "pdf"
)

// stdinInput names standard input as the card source.
const stdinInput = "-"

var outputFormats = []string{formatJSON, formatHTML, formatPage, formatPNG, formatPDF}

func validateFormat(f string) error {
	for _, known := range outputFormats {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (want %s)", ErrUnknownFormat, f, strings.Join(outputFormats, ", "))
}

// cardRenderer runs one render configuration, possibly many times in
// watch mode.
type cardRenderer struct {
	flags  *renderFlags
	cfg    *config.Config
	env    *Environment
	logger *slog.Logger
	theme  shipcard.Theme
	body   *shipcard.Renderer
	pages  *shipcard.PageRenderer
	gh     *github.Client
	snap   Snapshotter
}

// runRenderCmd executes the render command.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one input", ErrNoInput)
	}
	if err := validateFormat(flags.format); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	r, err := newCardRenderer(flags, cfg, env)
	if err != nil {
		return err
	}
	defer r.Close()

	input := positional[0]
	if flags.watch {
		if input == stdinInput || fileutil.IsURL(input) {
			return wrapUsage(errors.New("--watch needs a local file"))
		}
		return watchFile(ctx, input, r.logger, func() error {
			return r.renderOnce(ctx, input)
		}, func(err error) {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		})
	}
	return r.renderOnce(ctx, input)
}

func newCardRenderer(flags *renderFlags, cfg *config.Config, env *Environment) (*cardRenderer, error) {
	r := &cardRenderer{
		flags:  flags,
		cfg:    cfg,
		env:    env,
		logger: newLogger(cfg, flags.common, env.Stderr),
	}

	themeName := flags.theme
	if themeName == "" {
		themeName = cfg.Render.Theme
	}
	if themeName != "" {
		theme, ok := shipcard.ParseTheme(themeName)
		if !ok {
			return nil, wrapUsage(fmt.Errorf("unknown theme %q", themeName))
		}
		r.theme = theme
	}

	r.body = newRenderer(cfg, flags.noHilite)
	if flags.format != formatJSON && flags.format != formatHTML {
		pages, err := newPageRenderer(cfg, r.body)
		if err != nil {
			return nil, err
		}
		r.pages = pages
	}
	r.gh = newGitHubClient(cfg, r.body, r.logger)
	return r, nil
}

// Close releases the browser, if one was started.
func (r *cardRenderer) Close() {
	if r.snap == nil {
		return
	}
	if err := r.snap.Close(); err != nil {
		r.logger.Warn("closing browser", slog.String("error", err.Error()))
	}
}

// renderOnce loads, renders and writes the card.
func (r *cardRenderer) renderOnce(ctx context.Context, input string) error {
	loaded, err := r.load(ctx, input)
	if err != nil {
		return err
	}
	out, err := r.encode(ctx, loaded)
	if err != nil {
		return err
	}
	return r.write(input, out)
}

// load reads the card from a GitHub URL, stdin or a local file.
func (r *cardRenderer) load(ctx context.Context, input string) (*github.LoadedCard, error) {
	if fileutil.IsURL(input) {
		target, err := github.ParseURL(input)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("fetching card", slog.String("target", target.String()))
		return r.gh.Load(ctx, target)
	}

	raw, err := readCard(input, r.env.Stdin)
	if err != nil {
		return nil, err
	}
	return loadLocal(ctx, raw, r.flags.at, r.body)
}

// readCard reads a card from path, or from stdin when path is "-".
func readCard(path string, stdin io.Reader) (string, error) {
	if path == stdinInput {
		data, err := fileutil.ReadLimited(stdin, github.DefaultMaxCardSize)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %w", ErrReadCard, err)
		}
		return string(data), nil
	}

	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCard, err)
	}
	defer f.Close()
	data, err := fileutil.ReadLimited(f, github.DefaultMaxCardSize)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadCard, path, err)
	}
	return string(data), nil
}

// loadLocal parses a card read from disk. Relative image paths resolve
// only when both owner and repo are known.
func loadLocal(ctx context.Context, raw string, at locationFlags, body *shipcard.Renderer) (*github.LoadedCard, error) {
	card, err := shipcard.ParseCard(raw, at.owner)
	if err != nil {
		return nil, err
	}

	loaded := &github.LoadedCard{Owner: at.owner, Repo: at.repo, Card: card}
	if at.owner != "" && at.repo != "" {
		loaded.Ref = at.ref
		if loaded.Ref == "" {
			loaded.Ref = "main"
		}
		loaded.CardPath = at.cardPath
		if loaded.CardPath == "" {
			loaded.CardPath = shipcard.DefaultCardPath
		}
		card.Frontmatter = card.Frontmatter.Resolved(loaded.Location())
	}

	html, err := body.Render(ctx, card.Body)
	if err != nil {
		return nil, err
	}
	loaded.HTML = html
	return loaded, nil
}

// encode produces the bytes for the requested format.
func (r *cardRenderer) encode(ctx context.Context, loaded *github.LoadedCard) ([]byte, error) {
	switch r.flags.format {
	case formatJSON:
		data, err := json.MarshalIndent(loaded, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatHTML:
		return []byte(loaded.HTML + "\n"), nil
	}

	in := shipcard.PageInput{
		Card:     loaded.Card,
		At:       loaded.Location(),
		Metadata: &loaded.Metadata,
	}
	// The configured default never beats a theme the card picks itself.
	if r.flags.theme != "" || loaded.Card.Frontmatter.Theme == "" {
		in.Theme = r.theme
	}
	page, err := r.pages.Render(ctx, in)
	if err != nil {
		return nil, err
	}
	if r.flags.format == formatPage {
		return []byte(page), nil
	}

	if r.snap == nil {
		r.snap = r.env.NewSnapshotter(r.cfg.Snapshot)
	}
	opts := snapshot.Options{
		Format: snapshot.Format(r.flags.format),
		Width:  r.cfg.Snapshot.Width,
		Height: r.cfg.Snapshot.Height,
	}
	if r.flags.width > 0 {
		opts.Width = r.flags.width
	}
	if r.flags.height > 0 {
		opts.Height = r.flags.height
	}
	return r.snap.Capture(ctx, page, opts)
}

// write sends out to --output or stdout.
func (r *cardRenderer) write(input string, out []byte) error {
	if r.flags.output == "" {
		if _, err := r.env.Stdout.Write(out); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := fileutil.WriteOutput(r.flags.output, out); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !r.flags.common.quiet {
		fmt.Fprintf(r.env.Stdout, "%s -> %s\n", input, r.flags.output)
	}
	return nil
}
