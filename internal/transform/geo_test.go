package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionly/internal/transform"
)

func TestGeoCountryNames(t *testing.T) {
	resp := trafficResponse(
		geoRow("US", "United States", "60", "0.5", "3", "0.4", "90", "2.1", "30", "50"),
		geoRow("DE", "Germany", "30", "0.6", "1", "0.3", "120", "2.5", "10", "25"),
		geoRow("GB", "United Kingdom", "10", "0.4", "0", "0.5", "60", "1.8", "5", "9"),
	)

	result := transform.Geo(resp, nil, quietLogger())
	require.Len(t, result.Countries, 3)

	assert.Equal(t, "United States", result.Countries[0].Name)
	assert.Equal(t, 60.0, result.Countries[0].Sessions)
	assert.Equal(t, "Germany", result.Countries[1].Name)
	assert.Equal(t, "United Kingdom", result.Countries[2].Name)

	assert.Equal(t, 100.0, result.Summary.TotalSessions)
}

func TestGeoUnresolvableCountry(t *testing.T) {
	resp := trafficResponse(
		// Bogus code but a usable reported name.
		geoRow("ZZ", "Atlantis", "10", "0.5", "0", "0", "0", "0", "0", "0"),
		// Neither code nor name set.
		geoRow("(not set)", "(not set)", "5", "0.5", "0", "0", "0", "0", "0", "0"),
	)

	result := transform.Geo(resp, nil, quietLogger())
	require.Len(t, result.Countries, 2)

	assert.Equal(t, "Atlantis", result.Countries[0].Name)
	assert.Equal(t, "Unknown", result.Countries[1].Name)
}

func TestGeoMergesRowsPerCountry(t *testing.T) {
	// GA4 can split one country across rows; they fold into one group
	// with a session-weighted engagement rate.
	resp := trafficResponse(
		geoRow("US", "United States", "10", "0.2", "0", "0", "0", "0", "0", "0"),
		geoRow("US", "United States", "30", "0.6", "0", "0", "0", "0", "0", "0"),
	)

	result := transform.Geo(resp, nil, quietLogger())
	require.Len(t, result.Countries, 1)

	us := result.Countries[0]
	assert.Equal(t, 40.0, us.Sessions)
	assert.Equal(t, 100.0, us.Percentage)
	// (10*0.2 + 30*0.6) / 40 = 0.5
	assert.Equal(t, 50.0, us.EngagementRate)
}

func TestGeoComparisonDeltas(t *testing.T) {
	current := trafficResponse(
		geoRow("US", "United States", "50", "0.5", "0", "0", "0", "0", "0", "0"),
	)
	previous := trafficResponse(
		geoRow("US", "United States", "20", "0.5", "0", "0", "0", "0", "0", "0"),
	)

	result := transform.Geo(current, previous, quietLogger())
	require.Len(t, result.Countries, 1)
	assert.Equal(t, 30.0, result.Countries[0].AbsoluteChange)
	assert.Equal(t, transform.TrendUp, result.Countries[0].Trend)
}
