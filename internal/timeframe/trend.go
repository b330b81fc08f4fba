package timeframe

// DateStat is one bucket of a time series.
type DateStat struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}

// CalculateTrend fits a least-squares line through the series and returns
// its slope. Fewer than two points have no trend.
func CalculateTrend(points []DateStat) float64 {
	if len(points) < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(points))

	for i, point := range points {
		x := float64(i)
		y := point.Count

		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}
