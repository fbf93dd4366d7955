package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()
		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("expected no custom loader")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()
		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("expected custom loader")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()
		if _, err := NewAssetResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles/card.css", "/* override */")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error: %v", err)
	}

	t.Run("custom wins", func(t *testing.T) {
		t.Parallel()
		got, err := r.LoadStyle(DefaultStyleName)
		if err != nil || got != "/* override */" {
			t.Errorf("LoadStyle() = %q, %v", got, err)
		}
	})

	t.Run("embedded when custom lacks asset", func(t *testing.T) {
		t.Parallel()
		got, err := r.LoadTemplate(DefaultTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error: %v", err)
		}
		if !strings.Contains(got, "<!DOCTYPE html>") {
			t.Error("expected embedded card template")
		}
	})

	t.Run("validation errors are not masked", func(t *testing.T) {
		t.Parallel()
		if _, err := r.LoadStyle("a/b"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()
		if _, err := r.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})
}
