package transform

// Summary carries the aggregate totals accompanying every breakdown.
// Average rates are session-weighted across the finalized groups.
type Summary struct {
	TotalSessions     float64 `json:"total_sessions"`
	TotalConversions  float64 `json:"total_conversions"`
	TotalNewUsers     float64 `json:"total_new_users"`
	TotalUsers        float64 `json:"total_users"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgBounceRate     float64 `json:"avg_bounce_rate"`
	ConversionRate    float64 `json:"conversion_rate"`
	GroupCount        int     `json:"group_count"`
}

// Summarize recomputes the aggregate totals from finalized records.
func Summarize(stats []GroupStat) Summary {
	summary := Summary{GroupCount: len(stats)}

	var weightedEngagement, weightedBounce float64
	for _, stat := range stats {
		summary.TotalSessions += stat.Sessions
		summary.TotalConversions += stat.Conversions
		summary.TotalNewUsers += stat.NewUsers
		summary.TotalUsers += stat.NewUsers + stat.ReturningUsers
		weightedEngagement += stat.EngagementRate * stat.Sessions
		weightedBounce += stat.BounceRate * stat.Sessions
	}

	summary.AvgEngagementRate = round2(safeDiv(weightedEngagement, summary.TotalSessions))
	summary.AvgBounceRate = round2(safeDiv(weightedBounce, summary.TotalSessions))
	summary.ConversionRate = percentOf(summary.TotalConversions, summary.TotalSessions)
	return summary
}
