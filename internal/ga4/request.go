package ga4

// ReportRequest mirrors the Data API runReport request body.
type ReportRequest struct {
	DateRanges []DateRange `json:"dateRanges"`
	Dimensions []Dimension `json:"dimensions"`
	Metrics    []Metric    `json:"metrics"`
	Limit      int64       `json:"limit,omitempty"`
	OrderBys   []OrderBy   `json:"orderBys,omitempty"`
}

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Dimension struct {
	Name string `json:"name"`
}

type Metric struct {
	Name string `json:"name"`
}

type OrderBy struct {
	Metric    *MetricOrderBy    `json:"metric,omitempty"`
	Dimension *DimensionOrderBy `json:"dimension,omitempty"`
	Desc      bool              `json:"desc,omitempty"`
}

type MetricOrderBy struct {
	MetricName string `json:"metricName"`
}

type DimensionOrderBy struct {
	DimensionName string `json:"dimensionName"`
}

// ConversionEventMetric resolves the configured conversion event to the
// metric expression placed at metric index 2 of every report. An empty
// event name falls back to the property-wide keyEvents total.
func ConversionEventMetric(event string) string {
	if event == "" {
		return "keyEvents"
	}
	return "keyEvents:" + event
}

// sharedMetrics is the fixed metric order every breakdown report uses.
// Index positions must match the metric* constants in schema.go.
func sharedMetrics(conversionEvent string) []Metric {
	return []Metric{
		{Name: "sessions"},
		{Name: "engagementRate"},
		{Name: ConversionEventMetric(conversionEvent)},
		{Name: "bounceRate"},
		{Name: "averageSessionDuration"},
		{Name: "screenPageViewsPerSession"},
		{Name: "newUsers"},
		{Name: "totalUsers"},
	}
}

func dimensions(names ...string) []Dimension {
	dims := make([]Dimension, len(names))
	for i, name := range names {
		dims[i] = Dimension{Name: name}
	}
	return dims
}

// TrafficReport requests the source/medium/referrer breakdown feeding the
// platform-split and LLM-platform transforms.
func TrafficReport(startDate, endDate, conversionEvent string) ReportRequest {
	return ReportRequest{
		DateRanges: []DateRange{{StartDate: startDate, EndDate: endDate}},
		Dimensions: dimensions("sessionSource", "sessionMedium", "pageReferrer"),
		Metrics:    sharedMetrics(conversionEvent),
		Limit:      10000,
		OrderBys:   []OrderBy{{Metric: &MetricOrderBy{MetricName: "sessions"}, Desc: true}},
	}
}

// GeoReport requests the per-country breakdown.
func GeoReport(startDate, endDate, conversionEvent string) ReportRequest {
	return ReportRequest{
		DateRanges: []DateRange{{StartDate: startDate, EndDate: endDate}},
		Dimensions: dimensions("countryId", "country"),
		Metrics:    sharedMetrics(conversionEvent),
		Limit:      250,
		OrderBys:   []OrderBy{{Metric: &MetricOrderBy{MetricName: "sessions"}, Desc: true}},
	}
}

// DeviceReport requests the device/OS/browser breakdown.
func DeviceReport(startDate, endDate, conversionEvent string) ReportRequest {
	return ReportRequest{
		DateRanges: []DateRange{{StartDate: startDate, EndDate: endDate}},
		Dimensions: dimensions("deviceCategory", "operatingSystem", "browser"),
		Metrics:    sharedMetrics(conversionEvent),
		Limit:      5000,
		OrderBys:   []OrderBy{{Metric: &MetricOrderBy{MetricName: "sessions"}, Desc: true}},
	}
}

// PagesReport requests the per-page breakdown, carrying source/medium/
// referrer so each page's LLM share can be attributed.
func PagesReport(startDate, endDate, conversionEvent string) ReportRequest {
	return ReportRequest{
		DateRanges: []DateRange{{StartDate: startDate, EndDate: endDate}},
		Dimensions: dimensions("pagePath", "pageTitle", "sessionSource", "sessionMedium", "pageReferrer"),
		Metrics:    sharedMetrics(conversionEvent),
		Limit:      10000,
		OrderBys:   []OrderBy{{Metric: &MetricOrderBy{MetricName: "sessions"}, Desc: true}},
	}
}

// TrendReport requests the daily session series.
func TrendReport(startDate, endDate, conversionEvent string) ReportRequest {
	return ReportRequest{
		DateRanges: []DateRange{{StartDate: startDate, EndDate: endDate}},
		Dimensions: dimensions("date"),
		Metrics: []Metric{
			{Name: "sessions"},
			{Name: "engagementRate"},
			{Name: ConversionEventMetric(conversionEvent)},
		},
		Limit:    400,
		OrderBys: []OrderBy{{Dimension: &DimensionOrderBy{DimensionName: "date"}}},
	}
}
