package transform

import (
	"log/slog"
	"sort"
	"time"

	"visionly/internal/ga4"
	"visionly/internal/timeframe"
)

// TrendPoint is one day of the session series.
type TrendPoint struct {
	Date           string  `json:"date"`
	Sessions       float64 `json:"sessions"`
	EngagementRate float64 `json:"engagement_rate"`
	Conversions    float64 `json:"conversions"`
}

// TrendResult is the time series view with its fitted direction.
type TrendResult struct {
	Points    []TrendPoint `json:"points"`
	Slope     float64      `json:"slope"`
	Direction string       `json:"direction"`
	Summary   Summary      `json:"summary"`
}

// Trend turns the daily report into an ascending series and fits a
// least-squares slope through the session counts.
func Trend(current *ga4.ReportResponse, logger *slog.Logger) *TrendResult {
	points := []TrendPoint{}
	if current != nil {
		for _, row := range current.Rows {
			tr := ga4.DecodeTrendRow(row)
			points = append(points, TrendPoint{
				Date:           trendDate(tr.Date, logger),
				Sessions:       tr.Sessions,
				EngagementRate: round2(tr.EngagementRate * 100),
				Conversions:    tr.Conversions,
			})
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	series := make([]timeframe.DateStat, len(points))
	var totalSessions, totalConversions, weightedEngagement float64
	for i, point := range points {
		series[i] = timeframe.DateStat{Date: point.Date, Count: point.Sessions}
		totalSessions += point.Sessions
		totalConversions += point.Conversions
		weightedEngagement += point.EngagementRate * point.Sessions
	}

	slope := timeframe.CalculateTrend(series)
	direction := TrendNeutral
	switch {
	case slope > 0:
		direction = TrendUp
	case slope < 0:
		direction = TrendDown
	}

	return &TrendResult{
		Points:    points,
		Slope:     round4(slope),
		Direction: direction,
		Summary: Summary{
			TotalSessions:     totalSessions,
			TotalConversions:  totalConversions,
			AvgEngagementRate: round2(safeDiv(weightedEngagement, totalSessions)),
			ConversionRate:    percentOf(totalConversions, totalSessions),
			GroupCount:        len(points),
		},
	}
}

// trendDate converts GA4's compact YYYYMMDD date dimension to ISO form.
// Unparseable values are kept as-is so a malformed row cannot sink the
// whole series.
func trendDate(value string, logger *slog.Logger) string {
	parsed, err := timeframe.ParseReportDate(value, time.Now().UTC())
	if err != nil {
		logger.Warn("Unparseable trend date bucket", slog.String("date", value))
		return value
	}
	return timeframe.FormatReportDate(parsed)
}
