package transform

import (
	"log/slog"

	"visionly/internal/ga4"
)

// DeviceResult carries the three hardware/software breakdowns built from
// one device report pass.
type DeviceResult struct {
	DeviceBreakdown  []GroupStat `json:"device_breakdown"`
	OSBreakdown      []GroupStat `json:"os_breakdown"`
	BrowserBreakdown []GroupStat `json:"browser_breakdown"`
	Summary          Summary     `json:"summary"`
}

type deviceGroups struct {
	devices  GroupMap
	oss      GroupMap
	browsers GroupMap
}

// Devices aggregates the device report into device-category, operating
// system and browser breakdowns. Each row feeds all three groupings, so
// the three views share the same session total.
func Devices(current, comparison *ga4.ReportResponse, logger *slog.Logger) *DeviceResult {
	groups := foldDevices(current)
	previous := foldDevices(comparison)

	deviceStats := Finalize(groups.devices, previous.devices, logger)
	osStats := Finalize(groups.oss, previous.oss, logger)
	browserStats := Finalize(groups.browsers, previous.browsers, logger)

	return &DeviceResult{
		DeviceBreakdown:  deviceStats,
		OSBreakdown:      osStats,
		BrowserBreakdown: browserStats,
		Summary:          Summarize(deviceStats),
	}
}

func foldDevices(resp *ga4.ReportResponse) deviceGroups {
	groups := deviceGroups{
		devices:  GroupMap{},
		oss:      GroupMap{},
		browsers: GroupMap{},
	}
	if resp == nil {
		return groups
	}
	for _, row := range resp.Rows {
		dr := ga4.DecodeDeviceRow(row)

		category := unknownGroupName
		if !isUnsetDimension(dr.Category) {
			category = titleCaser.String(dr.Category)
		}
		browser := dr.Browser
		if isUnsetDimension(browser) {
			browser = unknownGroupName
		}

		groups.devices.Fold(category, dr.Metrics)
		groups.oss.Fold(normalizeOS(dr.OperatingSystem), dr.Metrics)
		groups.browsers.Fold(browser, dr.Metrics)
	}
	return groups
}
