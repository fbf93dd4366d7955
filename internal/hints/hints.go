// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-shipcard/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about raising the snapshot timeout.
func ForTimeout() string {
	return format("raise snapshot.timeout in the config file")
}

// ForConfigNotFound suggests --config or a user config file.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-shipcard") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns a hint for output directory errors.
func ForOutputDirectory() string {
	return format("check that the parent directory is writable")
}

// ForRateLimited suggests authenticating to GitHub.
func ForRateLimited() string {
	if os.Getenv("GITHUB_TOKEN") != "" {
		return format("GitHub rate limit reached even with GITHUB_TOKEN; retry later")
	}
	return format("set GITHUB_TOKEN to raise the GitHub API rate limit")
}

// ForPrivateRepo explains that only public repositories can be read.
func ForPrivateRepo() string {
	return format("only public repositories are supported; check the owner and name")
}

// ForCardNotFound points at the expected card location.
func ForCardNotFound(cardPath string) string {
	if cardPath == "" {
		cardPath = ".ishipped/card.md"
	}
	return format("commit a card at " + cardPath + " or link the file with /blob/{ref}/{path}.md")
}

// ForInvalidURL shows the accepted URL shapes.
func ForInvalidURL() string {
	return format("expected https://github.com/{owner}/{repo}[/blob/{ref}/{path}.md]")
}

// ForParseError explains a card parse error code.
func ForParseError(code string) string {
	switch code {
	case "INVALID_FORMAT":
		return format("the card must start with a '---' line, then YAML, then a closing '---' line")
	case "MISSING_TITLE":
		return format("add a 'title:' field of at most 100 characters to the frontmatter")
	}
	return ""
}

// ForStyleNotFound lists the available styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
