package post

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in the snippet output
const DateLayout = "2006-01-02"

var (
	// ErrNoTimestamp is returned by ParseDate for empty input.
	ErrNoTimestamp = errors.New("no timestamp")
	// ErrUnrecognizedDate is returned by ParseDate when no known format matches.
	ErrUnrecognizedDate = errors.New("unrecognized date format")
)

// timestampLayouts are tried in order against the timestamp after any "+hh:mm"
// zone suffix and trailing "Z" have been cut off.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999", // 2024-03-15T10:30:00.000Z
	"2006-01-02T15:04:05",           // 2024-03-15T10:30:00Z
	"2006-01-02T15:04:05-07:00",     // 2024-03-15T10:30:00-05:00
	"2006-01-02T15:04:05-0700",      // 2024-03-15T10:30:00-0500
	DateLayout,
}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ParseDate extracts the calendar date from a post timestamp.
// Returns ErrNoTimestamp for "" and ErrUnrecognizedDate if no layout matches and
// the string holds no valid YYYY-MM-DD substring.
func ParseDate(raw string) (string, error) {
	if raw == "" {
		return "", ErrNoTimestamp
	}

	trimmed := stripZone(raw)
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return t.Format(DateLayout), nil
		}
	}

	// Fall back to any ISO date embedded in the text
	if match := isoDatePattern.FindString(raw); match != "" {
		if _, err := time.Parse(DateLayout, match); err == nil {
			return match, nil
		}
	}

	return "", ErrUnrecognizedDate
}

// ResolveDate is ParseDate with a fallback: it returns now's date whenever the
// timestamp is missing or unparseable, so the result is always a valid date.
func ResolveDate(raw string, now time.Time) string {
	date, err := ParseDate(raw)
	if err != nil {
		return Today(now)
	}
	return date
}

// Today formats now as a calendar date
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// stripZone cuts everything from the first '+' and then from the first 'Z'.
func stripZone(s string) string {
	s, _, _ = strings.Cut(s, "+")
	s, _, _ = strings.Cut(s, "Z")
	return s
}
