package snapshot

import "errors"

// Sentinel errors for snapshot operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrCapture        = errors.New("capture failed")
	ErrInvalidOptions = errors.New("invalid snapshot options")
)
