package transform

import (
	"log/slog"

	"visionly/internal/ga4"
	"visionly/internal/pkg/urlinfo"
	"visionly/internal/platforms"
)

// PageStat extends the shared group record with page-specific fields:
// the page title, its content category, the LLM-attributed slice of its
// traffic, and the composite session-quality score.
type PageStat struct {
	GroupStat
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	TopReferrer  string  `json:"top_referrer"`
	LLMSessions  float64 `json:"llm_sessions"`
	LLMShare     float64 `json:"llm_share"`
	QualityScore float64 `json:"quality_score"`
}

// PagesResult is the per-page breakdown.
type PagesResult struct {
	Pages   []PageStat `json:"pages"`
	Summary Summary    `json:"summary"`
}

type pageFold struct {
	groups      GroupMap
	titles      map[string]string
	llmSessions map[string]float64
	referrers   map[string]map[string]float64
}

// Pages aggregates the pages report by path. The report carries source,
// medium and referrer per row, so each page's LLM-attributed sessions
// are accumulated alongside the shared metrics.
func Pages(current, comparison *ga4.ReportResponse, logger *slog.Logger) *PagesResult {
	folded := foldPages(current)
	previous := foldPages(comparison)

	stats := Finalize(folded.groups, previous.groups, logger)

	pages := make([]PageStat, len(stats))
	for i, stat := range stats {
		llmSessions := folded.llmSessions[stat.Name]
		pages[i] = PageStat{
			GroupStat:   stat,
			Title:       folded.titles[stat.Name],
			Category:    urlinfo.Classify(stat.Name),
			TopReferrer: topReferrer(folded.referrers[stat.Name]),
			LLMSessions: llmSessions,
			LLMShare:    percentOf(llmSessions, stat.Sessions),
			QualityScore: SessionQualityScore(
				stat.EngagementRate,
				stat.ConversionRate,
				stat.PagesPerSession,
				stat.AvgSessionDuration,
			),
		}
	}

	return &PagesResult{
		Pages:   pages,
		Summary: Summarize(stats),
	}
}

func foldPages(resp *ga4.ReportResponse) pageFold {
	folded := pageFold{
		groups:      GroupMap{},
		titles:      make(map[string]string),
		llmSessions: make(map[string]float64),
		referrers:   make(map[string]map[string]float64),
	}
	if resp == nil {
		return folded
	}
	for _, row := range resp.Rows {
		pr := ga4.DecodePageRow(row)
		path := pr.Path
		if isUnsetDimension(path) {
			path = "/"
		}

		folded.groups.Fold(path, pr.Metrics)

		if _, seen := folded.titles[path]; !seen && !isUnsetDimension(pr.Title) {
			folded.titles[path] = pr.Title
		}
		if platforms.IsLLM(platforms.Detect(pr.Source, pr.Medium, pr.Referrer)) {
			folded.llmSessions[path] += pr.Metrics.Sessions
		}
		if brand := urlinfo.BrandName(pr.Referrer); brand != "" {
			if folded.referrers[path] == nil {
				folded.referrers[path] = make(map[string]float64)
			}
			folded.referrers[path][brand] += pr.Metrics.Sessions
		}
	}
	return folded
}

// topReferrer picks the brand sending the most sessions; ties break
// alphabetically so output is deterministic.
func topReferrer(brands map[string]float64) string {
	best := ""
	var bestSessions float64
	for brand, sessions := range brands {
		if sessions > bestSessions || (sessions == bestSessions && best != "" && brand < best) {
			best = brand
			bestSessions = sessions
		}
	}
	return best
}
