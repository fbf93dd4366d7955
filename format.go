package shipcard

import (
	"fmt"
	"strconv"

	"github.com/alnah/go-shipcard/internal/dateutil"
)

// FormatShippedDate renders a shipped value as "March 15, 2024".
// Only the calendar date is used, so the result never shifts with the
// timestamp's zone. Invalid values are returned unchanged.
func FormatShippedDate(shipped string) string {
	out, err := FormatShippedDateAs(shipped, dateutil.DefaultDateFormat)
	if err != nil {
		return shipped
	}
	return out
}

// FormatShippedDateAs renders a shipped value with a token format such as
// "DD/MM/YYYY" or a preset name ("iso", "european", "us", "long").
func FormatShippedDateAs(shipped, format string) (string, error) {
	return dateutil.FormatShipped(shipped, format)
}

// FormatStars renders a star count, abbreviating thousands ("1.5k").
func FormatStars(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fk", float64(count)/1000)
	}
	return strconv.Itoa(count)
}
