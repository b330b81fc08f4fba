// Package ga4 holds the Google Analytics 4 Data API types the dashboard
// consumes, the report request builders, and a thin REST client.
package ga4

import (
	"strconv"
	"strings"
)

// ReportResponse is the subset of a runReport response the transforms use.
type ReportResponse struct {
	DimensionHeaders []DimensionHeader `json:"dimensionHeaders,omitempty"`
	MetricHeaders    []MetricHeader    `json:"metricHeaders,omitempty"`
	Rows             []Row             `json:"rows"`
	RowCount         int               `json:"rowCount,omitempty"`
}

type DimensionHeader struct {
	Name string `json:"name"`
}

type MetricHeader struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Row carries position-indexed dimension and metric values. Meaning is
// positional per report request; values are always strings on the wire.
type Row struct {
	DimensionValues []DimensionValue `json:"dimensionValues"`
	MetricValues    []MetricValue    `json:"metricValues"`
}

type DimensionValue struct {
	Value string `json:"value"`
}

type MetricValue struct {
	Value string `json:"value"`
}

// Dimension returns the dimension value at index i, or "" when the row is
// shorter than the report layout promised.
func (r Row) Dimension(i int) string {
	if i < 0 || i >= len(r.DimensionValues) {
		return ""
	}
	return r.DimensionValues[i].Value
}

// Metric returns the metric value at index i parsed as a float. Missing or
// non-numeric values become 0, never an error.
func (r Row) Metric(i int) float64 {
	if i < 0 || i >= len(r.MetricValues) {
		return 0
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(r.MetricValues[i].Value), 64)
	if err != nil {
		return 0
	}
	return parsed
}

// BatchResponse wraps a batchRunReports payload.
type BatchResponse struct {
	Reports []ReportResponse `json:"reports"`
}
