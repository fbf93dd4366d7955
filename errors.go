package shipcard

import (
	"errors"
	"fmt"

	"github.com/alnah/go-shipcard/internal/pipeline"
)

// ErrorCode classifies card parse failures for callers that report them.
type ErrorCode string

// Parse error codes.
const (
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeMissingTitle  ErrorCode = "MISSING_TITLE"
)

// Sentinel errors for library operations.
var (
	// ErrInvalidFormat matches any ParseError with CodeInvalidFormat.
	ErrInvalidFormat = errors.New("invalid card format")
	// ErrMissingTitle matches any ParseError with CodeMissingTitle.
	ErrMissingTitle = errors.New("card must have a title")

	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrPageRender     = errors.New("card page rendering failed")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// ParseError reports why a card document was rejected.
type ParseError struct {
	Code   ErrorCode
	Reason string
	Err    error // underlying cause, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's code.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrInvalidFormat:
		return e.Code == CodeInvalidFormat
	case ErrMissingTitle:
		return e.Code == CodeMissingTitle
	}
	return false
}

// CodeOf returns the parse error code carried by err, or "" if err is not a ParseError.
func CodeOf(err error) ErrorCode {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func invalidFormat(reason string, cause error) *ParseError {
	return &ParseError{Code: CodeInvalidFormat, Reason: reason, Err: cause}
}

func missingTitle() *ParseError {
	return &ParseError{Code: CodeMissingTitle, Reason: "card must have a title"}
}
