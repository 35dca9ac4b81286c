package normalizer

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidDate is returned when no known format parses the input.
var ErrInvalidDate = errors.New("invalid date format")

// Formats tried in fixed priority order: day-first European formats before
// ISO, full years before two-digit ones. The first success wins, so order
// is the disambiguation rule for inputs like "05.06.2024".
var dateFormats = []string{
	"02.01.2006",
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"02.01.06",
	"02/01/06",
	"02-01-06",
}

var (
	dateCandidateRe = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}[./-]\d{1,2}[./-]\d{2,4})\b`)
	clockTimeRe     = regexp.MustCompile(`\b(\d{1,2}:\d{2}(?::\d{2})?)\b`)
)

// ParseFlexibleDate parses one date string against the known formats.
// Two-digit years expand with a fixed pivot: <50 means 2000s, else 1900s.
func ParseFlexibleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, format := range dateFormats {
		t, err := time.Parse(format, raw)
		if err != nil {
			continue
		}
		return applyYearPivot(t, format), nil
	}
	return time.Time{}, ErrInvalidDate
}

// FindDate locates the first parseable date substring in free text.
func FindDate(text string) (time.Time, bool) {
	for _, m := range dateCandidateRe.FindAllString(text, -1) {
		if t, err := ParseFlexibleDate(m); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindClockTime extracts a time-of-day string, independent of the date.
func FindClockTime(text string) (string, bool) {
	m := clockTimeRe.FindString(text)
	return m, m != ""
}

// StripDates removes date and clock substrings, leaving description text.
func StripDates(line string) string {
	line = dateCandidateRe.ReplaceAllString(line, "")
	return clockTimeRe.ReplaceAllString(line, "")
}

// applyYearPivot corrects Go's built-in 69-pivot for two-digit years to
// the fixed rule used here: years 50-99 belong to the 1900s.
func applyYearPivot(t time.Time, format string) time.Time {
	if !strings.Contains(format, "06") || strings.Contains(format, "2006") {
		return t
	}
	if t.Year() >= 2050 {
		return t.AddDate(-100, 0, 0)
	}
	return t
}
