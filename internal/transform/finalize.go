package transform

import (
	"log/slog"
	"sort"
)

// Trend directions on finalized group records.
const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// GroupStat is the finalized per-group record shared by every breakdown.
// Rates are display percentages (0–100, 2 decimals); durations are
// seconds. ReturningUsers is TotalUsers − NewUsers and is deliberately
// not clamped: a negative value means the upstream report is inconsistent
// and should surface in tests, not be papered over.
type GroupStat struct {
	Name               string  `json:"name"`
	Sessions           float64 `json:"sessions"`
	Percentage         float64 `json:"percentage"`
	EngagementRate     float64 `json:"engagement_rate"`
	BounceRate         float64 `json:"bounce_rate"`
	AvgSessionDuration float64 `json:"avg_session_duration"`
	PagesPerSession    float64 `json:"pages_per_session"`
	Conversions        float64 `json:"conversions"`
	ConversionRate     float64 `json:"conversion_rate"`
	NewUsers           float64 `json:"new_users"`
	ReturningUsers     float64 `json:"returning_users"`
	ShareChange        float64 `json:"share_change"`
	AbsoluteChange     float64 `json:"absolute_change"`
	Trend              string  `json:"trend"`
}

// finalize converts the accumulator into its finalized record. Weighted
// sums divide by the group's own session count; engagement and bounce are
// rounded to 4 decimals while still in GA4's native 0–1 range, then
// converted to display percentages.
func (a *Accumulator) finalize(name string, totalSessions float64) GroupStat {
	engagement := round4(safeDiv(a.WeightedEngagementRate, a.Sessions))
	bounce := round4(safeDiv(a.WeightedBounceRate, a.Sessions))

	return GroupStat{
		Name:               name,
		Sessions:           a.Sessions,
		Percentage:         percentOf(a.Sessions, totalSessions),
		EngagementRate:     round2(engagement * 100),
		BounceRate:         round2(bounce * 100),
		AvgSessionDuration: round2(safeDiv(a.WeightedSessionDuration, a.Sessions)),
		PagesPerSession:    round2(safeDiv(a.WeightedPagesPerSession, a.Sessions)),
		Conversions:        a.Conversions,
		ConversionRate:     percentOf(a.Conversions, a.Sessions),
		NewUsers:           a.NewUsers,
		ReturningUsers:     a.TotalUsers - a.NewUsers,
		Trend:              TrendNeutral,
	}
}

// Finalize turns a group map into sorted, percentage-annotated records.
// previous holds the comparison period's accumulators under the same keys
// and is only read; pass nil when no comparison was requested. The group
// total is computed across all groups before any percentage is assigned,
// then the finished records go through the consistency validator.
func Finalize(groups GroupMap, previous GroupMap, logger *slog.Logger) []GroupStat {
	if len(groups) == 0 {
		return []GroupStat{}
	}

	totalSessions := groups.TotalSessions()
	previousTotal := previous.TotalSessions()

	stats := make([]GroupStat, 0, len(groups))
	for name, acc := range groups {
		stat := acc.finalize(name, totalSessions)

		if prev, ok := previous[name]; ok {
			stat.AbsoluteChange = round2(acc.Sessions - prev.Sessions)
			stat.ShareChange = round2(stat.Percentage - percentOf(prev.Sessions, previousTotal))
		} else if len(previous) > 0 {
			// Group is new this period.
			stat.AbsoluteChange = round2(acc.Sessions)
			stat.ShareChange = stat.Percentage
		}

		switch {
		case stat.AbsoluteChange > 0:
			stat.Trend = TrendUp
		case stat.AbsoluteChange < 0:
			stat.Trend = TrendDown
		}

		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Sessions != stats[j].Sessions {
			return stats[i].Sessions > stats[j].Sessions
		}
		return stats[i].Name < stats[j].Name
	})

	return reconcile(stats, totalSessions, logger)
}
