package transform

import (
	"log/slog"

	"visionly/internal/ga4"
)

// GeoResult is the per-country breakdown.
type GeoResult struct {
	Countries []GroupStat `json:"countries"`
	Summary   Summary     `json:"summary"`
}

// Geo aggregates the geo report by country display name. Rows whose
// country cannot be resolved land in one Unknown group.
func Geo(current, comparison *ga4.ReportResponse, logger *slog.Logger) *GeoResult {
	groups := foldGeo(current)
	previous := foldGeo(comparison)

	stats := Finalize(groups, previous, logger)

	return &GeoResult{
		Countries: stats,
		Summary:   Summarize(stats),
	}
}

func foldGeo(resp *ga4.ReportResponse) GroupMap {
	groups := GroupMap{}
	if resp == nil {
		return groups
	}
	for _, row := range resp.Rows {
		gr := ga4.DecodeGeoRow(row)
		groups.Fold(countryDisplayName(gr.CountryCode, gr.CountryName), gr.Metrics)
	}
	return groups
}
