package shipcard

import "testing"

func TestFormatShippedDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"2024-03-15T12:00:00Z", "March 15, 2024"},
		{"2024-06-15T15:30:00Z", "June 15, 2024"},
		{"2024-12-25T12:00:00Z", "December 25, 2024"},
		{"2016-03-01", "March 1, 2016"},
		{"not a date", "not a date"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := FormatShippedDate(tt.input); got != tt.want {
				t.Errorf("FormatShippedDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatShippedDateAs(t *testing.T) {
	t.Parallel()

	got, err := FormatShippedDateAs("2024-03-05", "european")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "05/03/2024" {
		t.Errorf("got %q, want %q", got, "05/03/2024")
	}
}

func TestFormatStars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0k"},
		{1500, "1.5k"},
		{15000, "15.0k"},
	}

	for _, tt := range tests {
		if got := FormatStars(tt.input); got != tt.want {
			t.Errorf("FormatStars(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
