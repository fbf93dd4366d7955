package main

// Notes:
// - exitCodeFor: we test sentinel errors from every package the CLI calls,
//   plus wrapped errors to verify the errors.Is() chain works correctly.

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/config"
	"github.com/alnah/go-shipcard/internal/fileutil"
	"github.com/alnah/go-shipcard/internal/github"
	"github.com/alnah/go-shipcard/internal/snapshot"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	_, parseErr := shipcard.ParseCard("not a card", "octo")

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Card errors (exit 5)
		{"parse error", parseErr, ExitCard},
		{"wrapped parse error", fmt.Errorf("loading: %w", parseErr), ExitCard},
		{"check failed", ErrCheckFailed, ExitCard},

		// Browser errors (exit 4)
		{"browser connect", snapshot.ErrBrowserConnect, ExitBrowser},
		{"page create", snapshot.ErrPageCreate, ExitBrowser},
		{"page load", snapshot.ErrPageLoad, ExitBrowser},
		{"capture", fmt.Errorf("png: %w", snapshot.ErrCapture), ExitBrowser},

		// Usage/config/validation errors (exit 2)
		{"usage", wrapUsage(errors.New("bad flag")), ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"unknown format", ErrUnknownFormat, ExitUsage},
		{"invalid url", github.ErrInvalidURL, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"snapshot options", snapshot.ErrInvalidOptions, ExitUsage},
		{"style not found", shipcard.ErrStyleNotFound, ExitUsage},
		{"template not found", shipcard.ErrTemplateNotFound, ExitUsage},
		{"invalid asset path", shipcard.ErrInvalidAssetPath, ExitUsage},

		// GitHub errors (exit 6)
		{"card not found", github.ErrCardNotFound, ExitGitHub},
		{"private repo", github.ErrPrivateRepo, ExitGitHub},
		{"rate limited", github.ErrRateLimited, ExitGitHub},
		{"fetch failed", fmt.Errorf("%w: status 500", github.ErrFetchFailed), ExitGitHub},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"input too large", fileutil.ErrInputTooLarge, ExitIO},
		{"read card", fmt.Errorf("%w: %w", ErrReadCard, os.ErrNotExist), ExitIO},
		{"write output", ErrWriteOutput, ExitIO},

		// General
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodes_Values - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodes_Values(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser, ExitCard, ExitGitHub}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c < 0 || c >= 126 {
			t.Errorf("exit code %d outside 0..125", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Hints attached to CLI errors
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	_, titleErr := shipcard.ParseCard("---\nsummary: x\n---\n", "octo")

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"card not found", github.ErrCardNotFound, ".ishipped/card.md"},
		{"private", github.ErrPrivateRepo, "public"},
		{"invalid url", github.ErrInvalidURL, "https://github.com/"},
		{"config", config.ErrConfigNotFound, "--config"},
		{"style", shipcard.ErrStyleNotFound, "card"},
		{"write", ErrWriteOutput, "parent directory"},
		{"missing title", titleErr, "title:"},
		{"none", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !containsAll(got, "hint:", tt.contains) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
