package main

import (
	"errors"

	shipcard "github.com/alnah/go-shipcard"
	"github.com/alnah/go-shipcard/internal/assets"
	"github.com/alnah/go-shipcard/internal/config"
	"github.com/alnah/go-shipcard/internal/github"
	"github.com/alnah/go-shipcard/internal/hints"
	"github.com/alnah/go-shipcard/internal/snapshot"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, github.ErrRateLimited):
		return hints.ForRateLimited()
	case errors.Is(err, github.ErrPrivateRepo):
		return hints.ForPrivateRepo()
	case errors.Is(err, github.ErrCardNotFound):
		return hints.ForCardNotFound("")
	case errors.Is(err, github.ErrInvalidURL):
		return hints.ForInvalidURL()
	case errors.Is(err, snapshot.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, snapshot.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound([]string{"~/.config/go-shipcard/<name>.yaml"})
	case errors.Is(err, shipcard.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Styles())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return hints.ForParseError(string(shipcard.CodeOf(err)))
}
