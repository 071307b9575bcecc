package timeline

import (
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format of every derived date.
	DateLayout = "2006-01-02"

	// TimestampLayout renders sub-record timestamps: UTC, no zone suffix.
	TimestampLayout = "2006-01-02 15:04:05"

	// LowerSentinel stands in for a missing start bound when classifying.
	LowerSentinel = "1900-01-01"

	// UpperSentinel stands in for a missing end bound when classifying.
	UpperSentinel = "2999-12-31"
)

// acceptedLayouts are the stored date shapes ParseDate understands, from the
// bare calendar date to the full timestamps older records carry.
var acceptedLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// ParseDate parses a stored date into a UTC midnight calendar date.
// Timestamps carrying an offset are normalized to UTC before truncation.
// ok is false for empty or unparseable input; callers treat that as absent.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// NormalizeDate returns the calendar date of s formatted with DateLayout,
// or nil when s is nil or unparseable.
func NormalizeDate(s *string) *string {
	if s == nil {
		return nil
	}
	t, ok := ParseDate(*s)
	if !ok {
		return nil
	}
	return formatDate(t)
}

// FormatTimestamp renders t with TimestampLayout in UTC, or nil when t is nil.
func FormatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(TimestampLayout)
	return &s
}

// Today returns now as a calendar date string on the local clock.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

func formatDate(t time.Time) *string {
	s := t.Format(DateLayout)
	return &s
}
