package transform

import (
	"strings"
	"sync"

	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"visionly/internal/platforms"
)

const unknownGroupName = "Unknown"

var titleCaser = cases.Title(language.AmericanEnglish)

// Chart colors for the non-LLM channels; LLM platforms carry their own
// color in the pattern database.
var channelColors = map[string]string{
	"Organic":    "#34A853",
	"Paid":       "#FBBC05",
	"Referral":   "#9AA0A6",
	"Email":      "#EA4335",
	"Social":     "#4285F4",
	"Direct":     "#5F6368",
	"Other":      "#BDC1C6",
	LLMGroupName: "#8B5CF6",
}

// channelDisplayName keeps LLM platform names canonical and title-cases
// the lowercase channel names the detector returns.
func channelDisplayName(detected string) string {
	if platforms.IsLLM(detected) {
		return detected
	}
	return titleCaser.String(detected)
}

func colorFor(name string) string {
	if color := platforms.Color(name); color != "" {
		return color
	}
	return channelColors[name]
}

var (
	countryQuery     *gountries.Query
	countryQueryOnce sync.Once
)

// countryDisplayName resolves an ISO country code to its common name,
// falling back to the report's own country dimension, then to Unknown.
func countryDisplayName(code, reported string) string {
	if isUnsetDimension(code) && isUnsetDimension(reported) {
		return unknownGroupName
	}

	countryQueryOnce.Do(func() {
		countryQuery = gountries.New()
	})

	if !isUnsetDimension(code) {
		if country, err := countryQuery.FindCountryByAlpha(code); err == nil {
			return country.Name.Common
		}
	}
	if !isUnsetDimension(reported) {
		return reported
	}
	return strings.ToUpper(code)
}

// normalizeOS folds GA4's operating system values into the canonical
// family names the dashboard charts.
func normalizeOS(os string) string {
	if isUnsetDimension(os) {
		return unknownGroupName
	}
	lower := strings.ToLower(os)
	switch {
	case strings.Contains(lower, "mac") || strings.Contains(lower, "darwin"):
		return "MacOS"
	case strings.Contains(lower, "ios") || strings.Contains(lower, "iphone os"):
		return "iOS"
	case strings.Contains(lower, "android"):
		return "Android"
	case strings.Contains(lower, "windows"):
		return "Windows"
	case strings.Contains(lower, "linux"):
		return "Linux"
	case strings.Contains(lower, "chrome os"):
		return "ChromeOS"
	default:
		return os
	}
}

func isUnsetDimension(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || trimmed == "(not set)" || trimmed == "(other)"
}
