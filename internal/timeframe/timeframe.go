// Package timeframe resolves GA4 report date strings and computes the
// comparison window used for period-over-period deltas.
package timeframe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ReportDateFormat is the wire format GA4 expects for absolute dates.
const ReportDateFormat = "2006-01-02"

type TimeProvider interface {
	Now() time.Time
}

// DefaultTimeProvider is the default implementation that uses the system
// clock. Tests inject a fixed provider instead.
type DefaultTimeProvider struct{}

func (DefaultTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

var daysAgoPattern = regexp.MustCompile(`^(\d+)daysAgo$`)
var compactDatePattern = regexp.MustCompile(`^\d{8}$`)

// ParseReportDate resolves a GA4 report date string to a concrete day,
// truncated to midnight UTC. Supported forms: "today", "yesterday",
// "<N>daysAgo", YYYYMMDD and YYYY-MM-DD. Anything else is tried against
// RFC 3339 before giving up.
func ParseReportDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	today := truncateToDay(now)

	switch value {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if matches := daysAgoPattern.FindStringSubmatch(value); matches != nil {
		days, err := strconv.Atoi(matches[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid daysAgo offset %q: %w", value, err)
		}
		return today.AddDate(0, 0, -days), nil
	}

	if compactDatePattern.MatchString(value) {
		parsed, err := time.ParseInLocation("20060102", value, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid compact date %q: %w", value, err)
		}
		return parsed, nil
	}

	if parsed, err := time.ParseInLocation(ReportDateFormat, value, time.UTC); err == nil {
		return parsed, nil
	}

	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return truncateToDay(parsed.UTC()), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized report date %q", value)
}

// FormatReportDate renders a day as zero-padded YYYY-MM-DD.
func FormatReportDate(t time.Time) string {
	return t.UTC().Format(ReportDateFormat)
}

func truncateToDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
