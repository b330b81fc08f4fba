package timeframe

import (
	"log/slog"
	"math"
)

// Fallback window returned when the requested range cannot be parsed.
const (
	DefaultComparisonStart = "7daysAgo"
	DefaultComparisonEnd   = "today"
)

// ComparisonWindow is a GA4 date range immediately preceding the requested
// one, with the same length, used for period-over-period deltas.
type ComparisonWindow struct {
	StartDate string `json:"comparison_start_date"`
	EndDate   string `json:"comparison_end_date"`
}

// ComparisonRange computes the equal-length period directly before
// startDate..endDate, with no gap and no overlap. Unparseable inputs are
// recovered with a logged warning and the default trailing-week window,
// never an error.
func ComparisonRange(startDate, endDate string, provider TimeProvider, logger *slog.Logger) ComparisonWindow {
	now := provider.Now()

	start, startErr := ParseReportDate(startDate, now)
	end, endErr := ParseReportDate(endDate, now)
	if startErr != nil || endErr != nil {
		logger.Warn("Invalid report date range, using default comparison window",
			slog.String("start_date", startDate),
			slog.String("end_date", endDate),
			slog.Any("start_error", startErr),
			slog.Any("end_error", endErr))
		return ComparisonWindow{StartDate: DefaultComparisonStart, EndDate: DefaultComparisonEnd}
	}

	periodDays := int(math.Ceil(end.Sub(start).Hours() / 24))
	comparisonEnd := start.AddDate(0, 0, -1)
	comparisonStart := comparisonEnd.AddDate(0, 0, -periodDays)

	return ComparisonWindow{
		StartDate: FormatReportDate(comparisonStart),
		EndDate:   FormatReportDate(comparisonEnd),
	}
}
