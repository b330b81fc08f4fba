package transform

import "visionly/internal/platforms"

// LLMGroupName is the synthetic group absorbing the individual LLM
// platform groups after rollup.
const LLMGroupName = "LLMs"

// LLMBreakdownEntry records one LLM platform's sessions before rollup,
// kept aside for validation and the per-platform drill-down.
type LLMBreakdownEntry struct {
	Platform string  `json:"platform"`
	Sessions float64 `json:"sessions"`
	Color    string  `json:"color"`
}

// RollupLLMs merges the known LLM platform groups into one "LLMs" group,
// summing their raw accumulators so the combined weighted averages stay
// correct, and removes the individual entries so sessions are counted
// once. No rollup happens unless combined LLM sessions are positive.
// The returned breakdown is independent of the mutated map.
func RollupLLMs(groups GroupMap) []LLMBreakdownEntry {
	combined := &Accumulator{}
	breakdown := []LLMBreakdownEntry{}
	var absorbed []string

	for _, name := range platforms.Names() {
		acc, ok := groups[name]
		if !ok {
			continue
		}
		combined.Merge(acc)
		absorbed = append(absorbed, name)
		if acc.Sessions > 0 {
			breakdown = append(breakdown, LLMBreakdownEntry{
				Platform: name,
				Sessions: acc.Sessions,
				Color:    platforms.Color(name),
			})
		}
	}

	if combined.Sessions <= 0 {
		return breakdown
	}

	for _, name := range absorbed {
		delete(groups, name)
	}
	groups[LLMGroupName] = combined

	return breakdown
}
