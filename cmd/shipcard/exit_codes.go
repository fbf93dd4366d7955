package main

import (
	"errors"
	"fmt"
	"os"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/config"
	"github.com/alnah/go-shipcard/internal/dateutil"
	"github.com/alnah/go-shipcard/internal/fileutil"
	"github.com/alnah/go-shipcard/internal/github"
	"github.com/alnah/go-shipcard/internal/snapshot"
)

// Exit codes for the shipcard CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitCard    = 5 // Card failed to parse
	ExitGitHub  = 6 // Fetching from GitHub failed
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

func wrapUsage(err error) error {
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Card errors (exit 5)
	if errors.Is(err, ErrCheckFailed) || shipcard.CodeOf(err) != "" {
		return ExitCard
	}

	// Browser errors (exit 4)
	if errors.Is(err, snapshot.ErrBrowserConnect) ||
		errors.Is(err, snapshot.ErrPageCreate) ||
		errors.Is(err, snapshot.ErrPageLoad) ||
		errors.Is(err, snapshot.ErrCapture) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, github.ErrInvalidURL) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, snapshot.ErrInvalidOptions) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, shipcard.ErrStyleNotFound) ||
		errors.Is(err, shipcard.ErrTemplateNotFound) ||
		errors.Is(err, shipcard.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// GitHub errors (exit 6)
	if github.Code(err) != "" {
		return ExitGitHub
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrInputTooLarge) ||
		errors.Is(err, ErrReadCard) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
