package cli

import "time"

// parseDate parses a "2006-01-02" date string.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
