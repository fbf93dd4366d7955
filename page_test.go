package shipcard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const pageCard = `---
title: "Launch <Day>"
summary: A tool for shipping
hero: ./hero.png
shipped: "2024-03-15"
version: "1.2.0"
tags: [go, cli]
author:
  name: Jane
  github: jdoe
links:
  - label: Site
    url: https://example.com
    primary: true
collaborators: [alice]
theme: forest
---
## Notes

<script>alert(1)</script>
`

func renderTestPage(t *testing.T, in PageInput) *goquery.Document {
	t.Helper()
	out, err := RenderPage(context.Background(), in)
	if err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}
	return parseHTML(t, out)
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	card := mustParse(t, pageCard)
	doc := renderTestPage(t, PageInput{
		Card:     card,
		At:       Location{Owner: "owner", Repo: "repo", Ref: "main"},
		Metadata: &RepoMetadata{Stars: 1500, License: "MIT"},
	})

	if got := doc.Find("h1.card-title").Text(); got != "Launch <Day>" {
		t.Errorf("title = %q", got)
	}
	if got := doc.Find("title").Text(); got != "Launch <Day> · owner/repo" {
		t.Errorf("<title> = %q", got)
	}
	if src, _ := doc.Find("img.card-hero").Attr("src"); src != "https://raw.githubusercontent.com/owner/repo/main/.ishipped/hero.png" {
		t.Errorf("hero src = %q", src)
	}
	if got := doc.Find(".card-shipped time").Text(); got != "Shipped March 15, 2024" {
		t.Errorf("shipped = %q", got)
	}
	if dt, _ := doc.Find(".card-shipped time").Attr("datetime"); dt != "2024-03-15" {
		t.Errorf("datetime = %q", dt)
	}
	if got := doc.Find(".card-stars").Text(); !strings.Contains(got, "1.5k") {
		t.Errorf("stars = %q", got)
	}
	if got := doc.Find(".card-tags li").Length(); got != 2 {
		t.Errorf("tags = %d, want 2", got)
	}
	if got := doc.Find(".card-links a.primary").Text(); got != "Site" {
		t.Errorf("primary link = %q", got)
	}
	if href, _ := doc.Find("a.card-author").Attr("href"); href != "https://github.com/jdoe" {
		t.Errorf("author href = %q", href)
	}
	if href, _ := doc.Find("a.card-repo").Attr("href"); href != "https://github.com/owner/repo" {
		t.Errorf("repo href = %q", href)
	}
	if got := doc.Find(".card-body h2").Text(); got != "Notes" {
		t.Errorf("body heading = %q", got)
	}
	if doc.Find(".card-body script").Length() != 0 {
		t.Error("script survived in body")
	}
	if cls, _ := doc.Find("body").Attr("class"); cls != "theme-forest" {
		t.Errorf("body class = %q", cls)
	}
	if css := doc.Find("style").Text(); !strings.Contains(css, "--accent: #16a34a") {
		t.Error("forest accent missing from stylesheet")
	}
}

func TestRenderPage_ThemeOverride(t *testing.T) {
	t.Parallel()

	card := mustParse(t, pageCard)

	tests := []struct {
		name  string
		theme Theme
		want  string
	}{
		{"override", ThemeRuby, "theme-ruby"},
		{"card theme", "", "theme-forest"},
		{"unknown falls back", Theme("neon"), "theme-default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := renderTestPage(t, PageInput{Card: card, Theme: tt.theme})
			if cls, _ := doc.Find("body").Attr("class"); cls != tt.want {
				t.Errorf("body class = %q, want %q", cls, tt.want)
			}
		})
	}
}

func TestRenderPage_NoLocationKeepsPaths(t *testing.T) {
	t.Parallel()

	card := mustParse(t, pageCard)
	doc := renderTestPage(t, PageInput{Card: card})
	if src, _ := doc.Find("img.card-hero").Attr("src"); src != "./hero.png" {
		t.Errorf("hero src = %q, want unresolved path", src)
	}
	if doc.Find("a.card-repo").Length() != 0 {
		t.Error("repo link needs a location or repo override")
	}
}

func TestRenderPage_NilCard(t *testing.T) {
	t.Parallel()

	_, err := RenderPage(context.Background(), PageInput{})
	if !errors.Is(err, ErrPageRender) {
		t.Errorf("error = %v, want ErrPageRender", err)
	}
}

func TestNewPageRenderer_CustomAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates", "card.html"), []byte("<p>{{.Title}}|{{.Theme}}</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error: %v", err)
	}
	p, err := NewPageRenderer(WithAssetLoader(loader))
	if err != nil {
		t.Fatalf("NewPageRenderer() error: %v", err)
	}

	out, err := p.Render(context.Background(), PageInput{Card: mustParse(t, "---\ntitle: Hi & bye\n---\n")})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if out != "<p>Hi &amp; bye|default</p>" {
		t.Errorf("Render() = %q", out)
	}
}

func TestNewPageRenderer_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []PageOption
		wantErr error
	}{
		{"missing style", []PageOption{WithPageStyle("nope")}, ErrStyleNotFound},
		{"missing template", []PageOption{WithPageTemplate("nope")}, ErrTemplateNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewPageRenderer(tt.opts...); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("bad date format", func(t *testing.T) {
		t.Parallel()
		if _, err := NewPageRenderer(WithDateFormat("")); err == nil {
			t.Error("expected error for empty date format")
		}
	})
}
