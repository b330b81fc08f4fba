package transform

// Session-quality score weights. Components are capped before weighting:
// 5 pages/session is worth the full 20 points, 5 minutes the full 10,
// engagement tops out at 40 and conversions at 30.
const (
	sqsPagesCap         = 5.0
	sqsPagesFactor      = 4.0
	sqsDurationCapMin   = 5.0
	sqsDurationFactor   = 2.0
	sqsEngagementWeight = 0.4
	sqsConversionWeight = 0.3
)

// SessionQualityScore computes the composite 0–100 page quality score
// from display-percentage engagement and conversion rates, pages per
// session, and average session duration in seconds. Pure: the same four
// inputs always produce the same score.
func SessionQualityScore(engagementRate, conversionRate, pagesPerSession, durationSeconds float64) float64 {
	pagesComponent := clamp(pagesPerSession, 0, sqsPagesCap) * sqsPagesFactor
	durationComponent := clamp(durationSeconds/60, 0, sqsDurationCapMin) * sqsDurationFactor
	engagementComponent := engagementRate * sqsEngagementWeight
	conversionComponent := conversionRate * sqsConversionWeight

	score := engagementComponent + conversionComponent + pagesComponent + durationComponent
	return round2(clamp(score, 0, 100))
}
