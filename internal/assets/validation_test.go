package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "card", false},
		{"dash and underscore", "dark_mode-2", false},
		{"max length", strings.Repeat("a", maxAssetNameLength), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", maxAssetNameLength+1), true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot", "card.css", true},
		{"traversal", "..", true},
		{"space", "my card", true},
		{"unicode", "carté", true},
		{"null byte", "card\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
