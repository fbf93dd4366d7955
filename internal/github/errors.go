package github

import "errors"

// Sentinel errors. Code maps each to the wire code used by the HTTP API.
var (
	ErrInvalidURL   = errors.New("not a GitHub repository URL")
	ErrCardNotFound = errors.New("card not found")
	ErrPrivateRepo  = errors.New("repository is private or does not exist")
	ErrRateLimited  = errors.New("GitHub rate limit exceeded")
	ErrFetchFailed  = errors.New("fetching from GitHub failed")
)

// Error codes.
const (
	CodeInvalidURL   = "INVALID_URL"
	CodeCardNotFound = "CARD_NOT_FOUND"
	CodePrivateRepo  = "PRIVATE_REPO"
	CodeRateLimited  = "RATE_LIMITED"
	CodeFetchFailed  = "FETCH_FAILED"
)

// Code returns the error code for err, or "" when err is not a fetch error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return CodeInvalidURL
	case errors.Is(err, ErrCardNotFound):
		return CodeCardNotFound
	case errors.Is(err, ErrPrivateRepo):
		return CodePrivateRepo
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrFetchFailed):
		return CodeFetchFailed
	}
	return ""
}
