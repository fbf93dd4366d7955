// Package dateutil validates card shipped dates and formats them with a
// token-based format language.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDate       = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat matches the long month style shown on cards ("March 15, 2024").
const DefaultDateFormat = "MMMM D, YYYY"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D
// Use brackets to escape literal text: [Date] preserves "Date" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10) // Pre-allocate with some buffer

	i := 0
	for i < len(format) {
		// Handle bracket-escaped literal text
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			// Copy content inside brackets literally
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2 // Skip past closing bracket
			continue
		}

		matched := false

		// Try to match tokens (longest first due to slice order)
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			// Preserve literal character
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// shippedPattern accepts YYYY-MM-DD or a full ISO-8601 timestamp with
// optional milliseconds and zone.
var shippedPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d{3})?(Z|[+-]\d{2}:\d{2})?)?$`)

// shippedLayouts are tried in order against a value that already matched shippedPattern.
var shippedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseShipped parses a shipped date. The value must match the ISO-8601
// shape and name a real calendar date and time (2024-02-30 is rejected).
// Timestamps without a zone are read as UTC.
func ParseShipped(value string) (time.Time, error) {
	if !shippedPattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 date", ErrInvalidDate, value)
	}
	for _, layout := range shippedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDate, value)
}

// ValidShipped reports whether value is accepted by ParseShipped.
func ValidShipped(value string) bool {
	_, err := ParseShipped(value)
	return err == nil
}

// FormatShipped renders the calendar date of a shipped value with a
// user-friendly format or preset name (see DatePresets). Only the date part
// is used, so "2016-03-01T23:00:00-08:00" is always March 1.
func FormatShipped(value, format string) (string, error) {
	if _, err := ParseShipped(value); err != nil {
		return "", err
	}
	day, err := time.Parse(time.DateOnly, value[:len(time.DateOnly)])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	goFmt, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return day.Format(goFmt), nil
}
