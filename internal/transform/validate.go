package transform

import (
	"log/slog"
	"math"
)

// Drift tolerances for the self-consistency check. Session totals may
// differ by rounding of string-encoded metric values; percentages may
// miss 100 by accumulated 2-decimal rounding.
const (
	sessionTolerance    = 1.0
	percentageTolerance = 0.1
)

// reconcile recomputes the grand total from the finalized records and
// compares it to the total the percentages were derived from. On drift
// beyond tolerance, every percentage is recomputed against the reconciled
// total. This is a self-healing pass: it logs a warning and never fails,
// so the dashboard never renders shares that don't sum to ~100%.
func reconcile(stats []GroupStat, expectedTotal float64, logger *slog.Logger) []GroupStat {
	if len(stats) == 0 {
		return stats
	}

	var finalTotal, percentageSum float64
	for _, stat := range stats {
		finalTotal += stat.Sessions
		percentageSum += stat.Percentage
	}

	sessionsDrift := math.Abs(finalTotal - expectedTotal)
	percentageDrift := math.Abs(percentageSum - 100)
	if sessionsDrift <= sessionTolerance && percentageDrift <= percentageTolerance {
		return stats
	}
	if finalTotal <= 0 {
		// Nothing to renormalize against; zero-session groups keep 0%.
		return stats
	}

	logger.Warn("Group totals drifted from report totals, recomputing percentages",
		slog.Float64("expected_total", expectedTotal),
		slog.Float64("reconciled_total", finalTotal),
		slog.Float64("percentage_sum", round2(percentageSum)))

	for i := range stats {
		stats[i].Percentage = percentOf(stats[i].Sessions, finalTotal)
	}
	return stats
}
