package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader loads the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle implements AssetLoader.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

// LoadTemplate implements AssetLoader.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

func (e *EmbeddedLoader) load(kind assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := builtin.ReadFile(kind.file(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", kind.notFound, name)
	}
	return string(content), nil
}

// Styles lists the names of the built-in stylesheets, sorted.
func (e *EmbeddedLoader) Styles() []string {
	matches, err := fs.Glob(builtin, "styles/*.css")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(m, "styles/"), ".css"))
	}
	sort.Strings(names)
	return names
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
