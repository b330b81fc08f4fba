// Package testsupport holds shared helpers for package tests: in-memory
// databases, quiet loggers and canned GA4 report payloads.
package testsupport

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"visionly/internal/ga4"
	"visionly/internal/reports"
)

// SetupTestDB creates an in-memory database with all models migrated.
// cache=shared keeps the database alive across multiple connections
// within a test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sanitizedName := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	if err := db.AutoMigrate(&reports.CachedReport{}); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// GetLogger returns a test logger that only surfaces errors.
func GetLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}

// TrafficRow builds one traffic-report row in the shared metric order:
// sessions, engagementRate, conversions, bounceRate, avgSessionDuration,
// pagesPerSession, newUsers, totalUsers.
func TrafficRow(source, medium, referrer string, metricValues ...string) ga4.Row {
	return ga4.Row{
		DimensionValues: dimensionValues(source, medium, referrer),
		MetricValues:    metricValuesOf(metricValues...),
	}
}

// Response wraps rows into a report response.
func Response(rows ...ga4.Row) *ga4.ReportResponse {
	return &ga4.ReportResponse{Rows: rows, RowCount: len(rows)}
}

func dimensionValues(values ...string) []ga4.DimensionValue {
	out := make([]ga4.DimensionValue, len(values))
	for i, v := range values {
		out[i] = ga4.DimensionValue{Value: v}
	}
	return out
}

func metricValuesOf(values ...string) []ga4.MetricValue {
	out := make([]ga4.MetricValue, len(values))
	for i, v := range values {
		out[i] = ga4.MetricValue{Value: v}
	}
	return out
}
