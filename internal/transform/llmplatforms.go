package transform

import (
	"log/slog"

	"visionly/internal/ga4"
	"visionly/internal/platforms"
)

// LLMPlatformsResult is the drill-down view behind the LLMs group: the
// same traffic report, restricted to LLM-attributed rows and kept
// per-platform. Percentages are shares of LLM traffic, not site traffic.
type LLMPlatformsResult struct {
	Platforms []GroupStat `json:"platforms"`
	Summary   Summary     `json:"summary"`
}

// LLMPlatforms aggregates LLM-attributed traffic rows by platform.
// No rollup happens here; this view exists to break the LLMs bucket open.
func LLMPlatforms(current, comparison *ga4.ReportResponse, logger *slog.Logger) *LLMPlatformsResult {
	groups := foldLLMTraffic(current)
	previous := foldLLMTraffic(comparison)

	stats := Finalize(groups, previous, logger)

	return &LLMPlatformsResult{
		Platforms: stats,
		Summary:   Summarize(stats),
	}
}

func foldLLMTraffic(resp *ga4.ReportResponse) GroupMap {
	groups := GroupMap{}
	if resp == nil {
		return groups
	}
	for _, row := range resp.Rows {
		tr := ga4.DecodeTrafficRow(row)
		name := platforms.Detect(tr.Source, tr.Medium, tr.Referrer)
		if !platforms.IsLLM(name) {
			continue
		}
		groups.Fold(name, tr.Metrics)
	}
	return groups
}
