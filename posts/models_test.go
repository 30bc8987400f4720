package posts

import (
	"testing"
	"time"
)

func TestFormatPublicationDate(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, time.June, 5, 10, 30, 0, 0, time.UTC), "June 05, 2024"},
		{time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC), "December 25, 2023"},
		{time.Date(2026, time.January, 1, 23, 59, 59, 0, time.UTC), "January 01, 2026"},
	}

	for _, tc := range cases {
		if got := FormatPublicationDate(tc.in); got != tc.want {
			t.Errorf("FormatPublicationDate(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
