package transform_test

import (
	"io"
	"log/slog"

	"visionly/internal/ga4"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dims(values ...string) []ga4.DimensionValue {
	out := make([]ga4.DimensionValue, len(values))
	for i, v := range values {
		out[i] = ga4.DimensionValue{Value: v}
	}
	return out
}

func metrics(values ...string) []ga4.MetricValue {
	out := make([]ga4.MetricValue, len(values))
	for i, v := range values {
		out[i] = ga4.MetricValue{Value: v}
	}
	return out
}

// trafficRow builds a traffic-report row. Metric order: sessions,
// engagementRate, conversions, bounceRate, avgSessionDuration,
// pagesPerSession, newUsers, totalUsers.
func trafficRow(source, medium, referrer string, metricValues ...string) ga4.Row {
	return ga4.Row{
		DimensionValues: dims(source, medium, referrer),
		MetricValues:    metrics(metricValues...),
	}
}

func trafficResponse(rows ...ga4.Row) *ga4.ReportResponse {
	return &ga4.ReportResponse{Rows: rows, RowCount: len(rows)}
}

func geoRow(code, name string, metricValues ...string) ga4.Row {
	return ga4.Row{
		DimensionValues: dims(code, name),
		MetricValues:    metrics(metricValues...),
	}
}

func deviceRow(category, os, browser string, metricValues ...string) ga4.Row {
	return ga4.Row{
		DimensionValues: dims(category, os, browser),
		MetricValues:    metrics(metricValues...),
	}
}

func pageRow(path, title, source, medium, referrer string, metricValues ...string) ga4.Row {
	return ga4.Row{
		DimensionValues: dims(path, title, source, medium, referrer),
		MetricValues:    metrics(metricValues...),
	}
}

func trendRow(date string, metricValues ...string) ga4.Row {
	return ga4.Row{
		DimensionValues: dims(date),
		MetricValues:    metrics(metricValues...),
	}
}
