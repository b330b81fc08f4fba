// Package transform turns raw GA4 report responses into aggregated,
// percentage-normalized breakdowns for the dashboard: platform split,
// LLM platforms, geo, device, pages and trend.
//
// Every transform is a thin configuration over the same primitive: fold
// rows into per-group accumulators, finalize session-weighted averages in
// a second pass, then validate that the derived views stay consistent
// with the independently computed totals.
package transform

import "visionly/internal/ga4"

// Accumulator holds the running totals for one group (a platform, a
// country, a device type or a page path) while rows are folded.
//
// Rate-like metrics are accumulated as session-weighted sums: each row
// contributes value × that row's sessions. Finalizing divides by the
// group's own accumulated session count, never by the row count.
type Accumulator struct {
	Sessions                float64
	WeightedEngagementRate  float64
	WeightedBounceRate      float64
	WeightedSessionDuration float64
	WeightedPagesPerSession float64
	Conversions             float64
	NewUsers                float64
	TotalUsers              float64
	RowCount                int
}

// Add folds one row's metrics into the accumulator.
func (a *Accumulator) Add(m ga4.MetricSet) {
	a.Sessions += m.Sessions
	a.WeightedEngagementRate += m.EngagementRate * m.Sessions
	a.WeightedBounceRate += m.BounceRate * m.Sessions
	a.WeightedSessionDuration += m.AvgSessionDuration * m.Sessions
	a.WeightedPagesPerSession += m.PagesPerSession * m.Sessions
	a.Conversions += m.Conversions
	a.NewUsers += m.NewUsers
	a.TotalUsers += m.TotalUsers
	a.RowCount++
}

// Merge folds another accumulator's raw sums into this one. Weighted sums
// add directly, so merged groups keep correct session-weighted averages.
func (a *Accumulator) Merge(other *Accumulator) {
	a.Sessions += other.Sessions
	a.WeightedEngagementRate += other.WeightedEngagementRate
	a.WeightedBounceRate += other.WeightedBounceRate
	a.WeightedSessionDuration += other.WeightedSessionDuration
	a.WeightedPagesPerSession += other.WeightedPagesPerSession
	a.Conversions += other.Conversions
	a.NewUsers += other.NewUsers
	a.TotalUsers += other.TotalUsers
	a.RowCount += other.RowCount
}

// GroupMap keys accumulators by group name. It is local to one
// transformation call; transforms never share state across invocations.
type GroupMap map[string]*Accumulator

// Fold routes one row's metrics into the named group, creating the
// accumulator on first sight.
func (g GroupMap) Fold(name string, m ga4.MetricSet) {
	acc, ok := g[name]
	if !ok {
		acc = &Accumulator{}
		g[name] = acc
	}
	acc.Add(m)
}

// TotalSessions sums sessions across all groups.
func (g GroupMap) TotalSessions() float64 {
	var total float64
	for _, acc := range g {
		total += acc.Sessions
	}
	return total
}
