package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-shipcard/internal/github"
	"github.com/alnah/go-shipcard/internal/snapshot"
)

// ---------------------------------------------------------------------------
// TestRender_LocalJSON - Local cards with repository location flags
// ---------------------------------------------------------------------------

func TestRender_LocalJSON(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	path := writeFile(t, "card.md", validCard)

	code := runMain([]string{"shipcard", "render", "--owner", "octo", "--repo", "tool", "--ref", "v2", path}, tio.env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, tio.stderr.String())
	}

	var got github.LoadedCard
	if err := json.Unmarshal([]byte(tio.stdout.String()), &got); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, tio.stdout.String())
	}
	if got.Card.Frontmatter.Title != "CLI Card" {
		t.Errorf("Title = %q", got.Card.Frontmatter.Title)
	}
	if got.Card.Frontmatter.Author.GitHub != "octo" {
		t.Errorf("Author.GitHub = %q, want octo", got.Card.Frontmatter.Author.GitHub)
	}
	want := "https://raw.githubusercontent.com/octo/tool/v2/.ishipped/hero.png"
	if got.Card.Frontmatter.Hero != want {
		t.Errorf("Hero = %q, want %q", got.Card.Frontmatter.Hero, want)
	}
	if !strings.Contains(got.HTML, "<h2>Usage</h2>") {
		t.Errorf("HTML = %q", got.HTML)
	}
}

func TestRender_LocalWithoutRepoKeepsRelativePaths(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	path := writeFile(t, "card.md", validCard)

	if code := runMain([]string{"shipcard", "render", path}, tio.env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, tio.stderr.String())
	}
	var got github.LoadedCard
	if err := json.Unmarshal([]byte(tio.stdout.String()), &got); err != nil {
		t.Fatal(err)
	}
	if got.Card.Frontmatter.Hero != "./hero.png" {
		t.Errorf("Hero = %q, want unresolved ./hero.png", got.Card.Frontmatter.Hero)
	}
}

// ---------------------------------------------------------------------------
// TestRender_HTML - Body fragment output
// ---------------------------------------------------------------------------

func TestRender_HTML(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	tio.env.Stdin = strings.NewReader(validCard)

	if code := runMain([]string{"shipcard", "render", "-f", "html", "-"}, tio.env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, tio.stderr.String())
	}
	out := tio.stdout.String()
	if !strings.HasPrefix(out, "<h2>Usage</h2>") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, `rel="noopener noreferrer"`) {
		t.Error("expected rewritten link")
	}
}

// ---------------------------------------------------------------------------
// TestRender_Page - Standalone page output
// ---------------------------------------------------------------------------

func TestRender_Page(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	path := writeFile(t, "card.md", validCard)
	out := filepath.Join(t.TempDir(), "site", "card.html")

	code := runMain([]string{"shipcard", "render", "-f", "page", "--theme", "sunset", "-o", out, path}, tio.env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, tio.stderr.String())
	}
	if !strings.Contains(tio.stdout.String(), "-> "+out) {
		t.Errorf("stdout = %q", tio.stdout.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Find("h1.card-title").Text(); got != "CLI Card" {
		t.Errorf("title = %q", got)
	}
	if doc.Find(".card-tags li").Length() != 2 {
		t.Error("expected two tags")
	}
	if !strings.Contains(string(data), "--accent: #ea580c") {
		t.Error("expected sunset accent")
	}
}

func TestRender_QuietSuppressesSummary(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	path := writeFile(t, "card.md", validCard)
	out := filepath.Join(t.TempDir(), "card.json")

	if code := runMain([]string{"shipcard", "render", "-q", "-o", out, path}, tio.env); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if tio.stdout.String() != "" {
		t.Errorf("stdout = %q, want empty", tio.stdout.String())
	}
}

func TestRender_UnknownTheme(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	path := writeFile(t, "card.md", validCard)

	if code := runMain([]string{"shipcard", "render", "--theme", "neon", path}, tio.env); code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// TestRender_Snapshot - PNG and PDF through the browser
// ---------------------------------------------------------------------------

func TestRender_Snapshot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantFormat snapshot.Format
		wantWidth  int
		wantHeight int
	}{
		{"png defaults", []string{"-f", "png"}, snapshot.FormatPNG, 1200, 630},
		{"png custom size", []string{"-f", "png", "--width", "800", "--height", "418"}, snapshot.FormatPNG, 800, 418},
		{"pdf", []string{"-f", "pdf"}, snapshot.FormatPDF, 1200, 630},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tio := newTestEnv(t)
			path := writeFile(t, "card.md", validCard)
			out := filepath.Join(t.TempDir(), "card.bin")

			args := append([]string{"shipcard", "render", "-o", out}, tt.args...)
			args = append(args, path)
			if code := runMain(args, tio.env); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr: %s", code, tio.stderr.String())
			}

			if len(tio.snap.opts) != 1 {
				t.Fatalf("captures = %d, want 1", len(tio.snap.opts))
			}
			got := tio.snap.opts[0]
			if got.Format != tt.wantFormat || got.Width != tt.wantWidth || got.Height != tt.wantHeight {
				t.Errorf("options = %+v", got)
			}
			if !tio.snap.closed {
				t.Error("expected browser to be closed")
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(data), string(tt.wantFormat)+":") {
				t.Errorf("output = %q", data)
			}
		})
	}
}

func TestRender_SnapshotBrowserError(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	tio.snap.err = errors.Join(snapshot.ErrBrowserConnect, errors.New("no chrome"))
	path := writeFile(t, "card.md", validCard)

	code := runMain([]string{"shipcard", "render", "-f", "png", "-o", filepath.Join(t.TempDir(), "x.png"), path}, tio.env)
	if code != ExitBrowser {
		t.Errorf("exit = %d, want %d", code, ExitBrowser)
	}
	if !strings.Contains(tio.stderr.String(), "failed to connect to browser") {
		t.Errorf("stderr: %s", tio.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRender_Errors - Exit codes for invalid cards and GitHub failures
// ---------------------------------------------------------------------------

func TestRender_InvalidCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"no frontmatter", "# Just markdown", "INVALID_FORMAT"},
		{"no title", "---\nsummary: hi\n---\nbody", "MISSING_TITLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tio := newTestEnv(t)
			path := writeFile(t, "card.md", tt.content)

			if code := runMain([]string{"shipcard", "render", path}, tio.env); code != ExitCard {
				t.Errorf("exit = %d, want %d", code, ExitCard)
			}
			if !strings.Contains(tio.stderr.String(), tt.code) {
				t.Errorf("stderr should contain %q, got %q", tt.code, tio.stderr.String())
			}
		})
	}
}

func TestRender_GitHubURL(t *testing.T) {
	t.Parallel()

	srv := fakeGitHub(t, validCard, 0)
	tio := newTestEnv(t)
	cfg := githubConfig(t, srv)

	code := runMain([]string{"shipcard", "render", "-c", cfg, "https://github.com/octo/tool"}, tio.env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, tio.stderr.String())
	}

	var got github.LoadedCard
	if err := json.Unmarshal([]byte(tio.stdout.String()), &got); err != nil {
		t.Fatal(err)
	}
	if got.Ref != "trunk" || got.Metadata.Stars != 42 || got.Metadata.License != "MIT" {
		t.Errorf("loaded = ref %q, meta %+v", got.Ref, got.Metadata)
	}
	want := "https://raw.githubusercontent.com/octo/tool/trunk/.ishipped/hero.png"
	if got.Card.Frontmatter.Hero != want {
		t.Errorf("Hero = %q, want %q", got.Card.Frontmatter.Hero, want)
	}
}

func TestRender_GitHubErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		wantInHint string
	}{
		{"card not found", http.StatusNotFound, ".ishipped/card.md"},
		{"private", http.StatusForbidden, "public repositories"},
		{"rate limited", http.StatusTooManyRequests, "GITHUB_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := fakeGitHub(t, validCard, tt.status)
			tio := newTestEnv(t)
			cfg := githubConfig(t, srv)

			code := runMain([]string{"shipcard", "render", "-c", cfg, "https://github.com/octo/tool"}, tio.env)
			if code != ExitGitHub {
				t.Errorf("exit = %d, want %d", code, ExitGitHub)
			}
			if !strings.Contains(tio.stderr.String(), tt.wantInHint) {
				t.Errorf("stderr should contain %q, got %q", tt.wantInHint, tio.stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadLocal - Location defaults
// ---------------------------------------------------------------------------

func TestLoadLocal(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	cfg, err := loadConfig("", tio.env)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := loadLocal(context.Background(), validCard,
		locationFlags{owner: "octo", repo: "tool", cardPath: "docs/card.md"}, newRenderer(cfg, false))
	if err != nil {
		t.Fatalf("loadLocal() error: %v", err)
	}
	if loaded.Ref != "main" {
		t.Errorf("Ref = %q, want main", loaded.Ref)
	}
	want := "https://raw.githubusercontent.com/octo/tool/main/docs/hero.png"
	if loaded.Card.Frontmatter.Hero != want {
		t.Errorf("Hero = %q, want %q", loaded.Card.Frontmatter.Hero, want)
	}
}
