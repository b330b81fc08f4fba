package transform

import (
	"fmt"
	"log/slog"

	"visionly/internal/ga4"
	"visionly/internal/platforms"
)

// PlatformSplitResult is the traffic-source view: channels plus the
// rolled-up LLMs group, with ranking and chart-ready performance data.
type PlatformSplitResult struct {
	PlatformSplit   []GroupStat         `json:"platform_split"`
	Rankings        []Ranking           `json:"rankings"`
	PerformanceData []PerformanceEntry  `json:"performance_data"`
	LLMBreakdown    []LLMBreakdownEntry `json:"llm_breakdown"`
	Summary         Summary             `json:"summary"`
}

// Ranking is one row of the ordered share table.
type Ranking struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Sessions float64 `json:"sessions"`
	Share    string  `json:"share"`
	Trend    string  `json:"trend"`
	Color    string  `json:"color"`
}

// PerformanceEntry feeds the per-platform quality bar charts.
type PerformanceEntry struct {
	Name               string  `json:"name"`
	EngagementRate     float64 `json:"engagement_rate"`
	BounceRate         float64 `json:"bounce_rate"`
	AvgSessionDuration float64 `json:"avg_session_duration"`
	ConversionRate     float64 `json:"conversion_rate"`
	Color              string  `json:"color"`
}

// PlatformSplit aggregates the traffic report by detected platform,
// rolls the LLM platforms into one group, and annotates period-over-
// period changes when a comparison response is present.
func PlatformSplit(current, comparison *ga4.ReportResponse, logger *slog.Logger) *PlatformSplitResult {
	groups := foldTraffic(current)
	previous := foldTraffic(comparison)

	breakdown := RollupLLMs(groups)
	RollupLLMs(previous)

	stats := Finalize(groups, previous, logger)

	rankings := make([]Ranking, len(stats))
	performance := make([]PerformanceEntry, len(stats))
	for i, stat := range stats {
		rankings[i] = Ranking{
			Rank:     i + 1,
			Name:     stat.Name,
			Sessions: stat.Sessions,
			Share:    fmt.Sprintf("%.2f%%", stat.Percentage),
			Trend:    stat.Trend,
			Color:    colorFor(stat.Name),
		}
		performance[i] = PerformanceEntry{
			Name:               stat.Name,
			EngagementRate:     stat.EngagementRate,
			BounceRate:         stat.BounceRate,
			AvgSessionDuration: stat.AvgSessionDuration,
			ConversionRate:     stat.ConversionRate,
			Color:              colorFor(stat.Name),
		}
	}

	return &PlatformSplitResult{
		PlatformSplit:   stats,
		Rankings:        rankings,
		PerformanceData: performance,
		LLMBreakdown:    breakdown,
		Summary:         Summarize(stats),
	}
}

// foldTraffic groups traffic rows by detected platform display name.
// A nil response folds to an empty map.
func foldTraffic(resp *ga4.ReportResponse) GroupMap {
	groups := GroupMap{}
	if resp == nil {
		return groups
	}
	for _, row := range resp.Rows {
		tr := ga4.DecodeTrafficRow(row)
		name := channelDisplayName(platforms.Detect(tr.Source, tr.Medium, tr.Referrer))
		groups.Fold(name, tr.Metrics)
	}
	return groups
}
