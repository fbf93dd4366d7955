package assets

import (
	"fmt"
	"regexp"
)

// maxAssetNameLength bounds asset names to keep file paths short.
const maxAssetNameLength = 64

var assetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateAssetName checks that name is safe to use as a file name.
// Only letters, digits, '_' and '-' are accepted, which rules out
// separators, dots and traversal sequences.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidAssetName, maxAssetNameLength)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
