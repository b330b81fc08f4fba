package http_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionly/internal/config"
	"visionly/internal/ga4"
	ihttp "visionly/internal/http"
	"visionly/internal/http/middleware"
	"visionly/internal/reports"
	"visionly/internal/testsupport"
	"visionly/internal/transform"
)

// stubRunner serves canned report responses and counts upstream calls.
type stubRunner struct {
	current    *ga4.ReportResponse
	comparison *ga4.ReportResponse
	err        error
	calls      int32
}

func (s *stubRunner) RunReport(_ context.Context, _ string, req ga4.ReportRequest) (*ga4.ReportResponse, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	// The comparison fetch carries the derived absolute window; the
	// current fetch keeps the requested relative dates.
	if len(req.DateRanges) == 1 && req.DateRanges[0].StartDate == "7daysAgo" {
		return s.current, nil
	}
	if s.comparison != nil {
		return s.comparison, nil
	}
	return &ga4.ReportResponse{}, nil
}

func newTestApp(t *testing.T, runner ihttp.ReportRunner, cacheTTL time.Duration) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AppName:         "visionly",
		Environment:     config.Test,
		GA4PropertyID:   "123456",
		ReportWorkers:   2,
		CacheTTLMinutes: int(cacheTTL.Minutes()),
	}

	cache := reports.NewCache(testsupport.SetupTestDB(t), cacheTTL, testsupport.GetLogger())
	svc := ihttp.NewService(cfg, runner, cache, testsupport.GetLogger())

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	api := app.Group("/api/v1/dashboard")
	api.Get("/platforms", svc.PlatformsAction)
	api.Get("/llm-platforms", svc.LLMPlatformsAction)
	api.Get("/geo", svc.GeoAction)
	api.Get("/devices", svc.DevicesAction)
	api.Get("/pages", svc.PagesAction)
	api.Get("/trend", svc.TrendAction)
	return app
}

func decodeBody(t *testing.T, body io.Reader, out interface{}) {
	t.Helper()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestPlatformsEndpoint(t *testing.T) {
	runner := &stubRunner{
		current: testsupport.Response(
			testsupport.TrafficRow("chatgpt.com", "referral", "https://chatgpt.com/", "20", "0.6", "2", "0.3", "120", "2.0", "15", "20"),
			testsupport.TrafficRow("google", "organic", "", "80", "0.4", "4", "0.5", "60", "1.5", "50", "70"),
		),
	}
	app := newTestApp(t, runner, time.Hour)

	req := httptest.NewRequest("GET", "/api/v1/dashboard/platforms", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result transform.PlatformSplitResult
	decodeBody(t, resp.Body, &result)

	require.Len(t, result.PlatformSplit, 2)
	assert.Equal(t, "Organic", result.PlatformSplit[0].Name)
	assert.Equal(t, transform.LLMGroupName, result.PlatformSplit[1].Name)
	assert.Equal(t, 100.0, result.Summary.TotalSessions)
	require.Len(t, result.LLMBreakdown, 1)
	assert.Equal(t, "ChatGPT", result.LLMBreakdown[0].Platform)
}

func TestPlatformsEndpointServedFromCache(t *testing.T) {
	runner := &stubRunner{
		current: testsupport.Response(
			testsupport.TrafficRow("google", "organic", "", "50", "0.5", "0", "0", "0", "0", "0", "0"),
		),
	}
	app := newTestApp(t, runner, time.Hour)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/platforms", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	// Current + comparison on the first request only.
	assert.Equal(t, int32(2), atomic.LoadInt32(&runner.calls))
}

func TestEndpointUpstreamFailure(t *testing.T) {
	runner := &stubRunner{err: errors.New("quota exhausted")}
	app := newTestApp(t, runner, 0)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/geo", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp.Body, &body)
	assert.Contains(t, body["error"], "geo")
}

func TestTrendEndpoint(t *testing.T) {
	runner := &stubRunner{
		current: &ga4.ReportResponse{Rows: []ga4.Row{
			{
				DimensionValues: []ga4.DimensionValue{{Value: "20260810"}},
				MetricValues:    []ga4.MetricValue{{Value: "10"}, {Value: "0.5"}, {Value: "1"}},
			},
			{
				DimensionValues: []ga4.DimensionValue{{Value: "20260811"}},
				MetricValues:    []ga4.MetricValue{{Value: "30"}, {Value: "0.5"}, {Value: "3"}},
			},
		}},
	}
	app := newTestApp(t, runner, 0)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/trend", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result transform.TrendResult
	decodeBody(t, resp.Body, &result)
	require.Len(t, result.Points, 2)
	assert.Equal(t, "2026-08-10", result.Points[0].Date)
	assert.Equal(t, transform.TrendUp, result.Direction)
}

func TestAPIKeyProtection(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/dashboard/platforms",
		middleware.APIKeyAuth("test-key", testsupport.GetLogger()),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	// Missing header
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/platforms", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Wrong scheme
	req := httptest.NewRequest("GET", "/api/v1/dashboard/platforms", nil)
	req.Header.Set("Authorization", "Basic test-key")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Wrong key
	req = httptest.NewRequest("GET", "/api/v1/dashboard/platforms", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Correct key
	req = httptest.NewRequest("GET", "/api/v1/dashboard/platforms", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthDisabledWhenNoKeyConfigured(t *testing.T) {
	app := fiber.New()
	app.Get("/open",
		middleware.APIKeyAuth("", testsupport.GetLogger()),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
