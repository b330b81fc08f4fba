package ga4

// Metric positions shared by the traffic, geo, device and pages reports.
// The request builders in request.go declare the metrics in exactly this
// order, so decoding is never driven by response headers. The conversion
// metric always sits at index 2 regardless of which key event it resolves
// to (see ConversionEventMetric).
const (
	metricSessions = iota
	metricEngagementRate
	metricConversions
	metricBounceRate
	metricAvgSessionDuration
	metricPagesPerSession
	metricNewUsers
	metricTotalUsers
)

// MetricSet is one row's metric block decoded by name. Absent values are 0.
type MetricSet struct {
	Sessions           float64
	EngagementRate     float64
	Conversions        float64
	BounceRate         float64
	AvgSessionDuration float64
	PagesPerSession    float64
	NewUsers           float64
	TotalUsers         float64
}

func decodeMetricSet(r Row) MetricSet {
	return MetricSet{
		Sessions:           r.Metric(metricSessions),
		EngagementRate:     r.Metric(metricEngagementRate),
		Conversions:        r.Metric(metricConversions),
		BounceRate:         r.Metric(metricBounceRate),
		AvgSessionDuration: r.Metric(metricAvgSessionDuration),
		PagesPerSession:    r.Metric(metricPagesPerSession),
		NewUsers:           r.Metric(metricNewUsers),
		TotalUsers:         r.Metric(metricTotalUsers),
	}
}

// TrafficRow is a row of the traffic report:
// dimensions [sessionSource, sessionMedium, pageReferrer].
type TrafficRow struct {
	Source   string
	Medium   string
	Referrer string
	Metrics  MetricSet
}

func DecodeTrafficRow(r Row) TrafficRow {
	return TrafficRow{
		Source:   r.Dimension(0),
		Medium:   r.Dimension(1),
		Referrer: r.Dimension(2),
		Metrics:  decodeMetricSet(r),
	}
}

// GeoRow is a row of the geo report: dimensions [countryId, country].
type GeoRow struct {
	CountryCode string
	CountryName string
	Metrics     MetricSet
}

func DecodeGeoRow(r Row) GeoRow {
	return GeoRow{
		CountryCode: r.Dimension(0),
		CountryName: r.Dimension(1),
		Metrics:     decodeMetricSet(r),
	}
}

// DeviceRow is a row of the device report:
// dimensions [deviceCategory, operatingSystem, browser].
type DeviceRow struct {
	Category        string
	OperatingSystem string
	Browser         string
	Metrics         MetricSet
}

func DecodeDeviceRow(r Row) DeviceRow {
	return DeviceRow{
		Category:        r.Dimension(0),
		OperatingSystem: r.Dimension(1),
		Browser:         r.Dimension(2),
		Metrics:         decodeMetricSet(r),
	}
}

// PageRow is a row of the pages report:
// dimensions [pagePath, pageTitle, sessionSource, sessionMedium, pageReferrer].
type PageRow struct {
	Path     string
	Title    string
	Source   string
	Medium   string
	Referrer string
	Metrics  MetricSet
}

func DecodePageRow(r Row) PageRow {
	return PageRow{
		Path:     r.Dimension(0),
		Title:    r.Dimension(1),
		Source:   r.Dimension(2),
		Medium:   r.Dimension(3),
		Referrer: r.Dimension(4),
		Metrics:  decodeMetricSet(r),
	}
}

// TrendRow is a row of the trend report: dimensions [date] (YYYYMMDD),
// metrics [sessions, engagementRate, conversions].
type TrendRow struct {
	Date           string
	Sessions       float64
	EngagementRate float64
	Conversions    float64
}

func DecodeTrendRow(r Row) TrendRow {
	return TrendRow{
		Date:           r.Dimension(0),
		Sessions:       r.Metric(0),
		EngagementRate: r.Metric(1),
		Conversions:    r.Metric(2),
	}
}
