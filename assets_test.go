package shipcard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetLoader_EmptyPath(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader(\"\") error = %v", err)
	}

	css, err := loader.LoadStyle(DefaultStyle)
	if err != nil || css == "" {
		t.Errorf("LoadStyle(%q) = %d bytes, %v", DefaultStyle, len(css), err)
	}
	tmpl, err := loader.LoadTemplate(DefaultTemplate)
	if err != nil || !strings.Contains(tmpl, "{{.Body}}") {
		t.Errorf("LoadTemplate(%q) error = %v", DefaultTemplate, err)
	}
}

func TestNewAssetLoader_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewAssetLoader_ErrorMapping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "dark.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	if css, err := loader.LoadStyle("dark"); err != nil || css != "body{}" {
		t.Errorf("LoadStyle(dark) = %q, %v", css, err)
	}

	tests := []struct {
		name    string
		load    func() error
		wantErr error
	}{
		{"unknown style", func() error { _, err := loader.LoadStyle("light"); return err }, ErrStyleNotFound},
		{"unknown template", func() error { _, err := loader.LoadTemplate("x"); return err }, ErrTemplateNotFound},
		{"invalid name", func() error { _, err := loader.LoadStyle("../x"); return err }, ErrStyleNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.load(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
