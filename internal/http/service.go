package http

import (
	"context"
	"fmt"
	"log/slog"

	"visionly/internal/config"
	"visionly/internal/ga4"
	"visionly/internal/pkg/async"
	"visionly/internal/reports"
	"visionly/internal/timeframe"
	"visionly/internal/transform"
)

// ReportRunner abstracts the GA4 client so handler tests can stub the
// upstream API.
type ReportRunner interface {
	RunReport(ctx context.Context, propertyID string, req ga4.ReportRequest) (*ga4.ReportResponse, error)
}

// Service resolves dashboard requests: cache first, then the current and
// comparison period reports in parallel, then the transforms.
type Service struct {
	cfg    *config.Config
	runner ReportRunner
	cache  *reports.Cache
	logger *slog.Logger
	clock  timeframe.TimeProvider
}

func NewService(cfg *config.Config, runner ReportRunner, cache *reports.Cache, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		runner: runner,
		cache:  cache,
		logger: logger,
		clock:  timeframe.DefaultTimeProvider{},
	}
}

// reportBuilder produces the request for one date range of a report kind.
type reportBuilder func(startDate, endDate, conversionEvent string) ga4.ReportRequest

// fetchPair runs the current and comparison period reports in parallel.
// A failed current report fails the request; a failed comparison report
// degrades to nil so deltas are simply omitted.
func (s *Service) fetchPair(ctx context.Context, kind, startDate, endDate string, build reportBuilder) (*ga4.ReportResponse, *ga4.ReportResponse, error) {
	window := timeframe.ComparisonRange(startDate, endDate, s.clock, s.logger)

	tasks := []async.Task{
		{
			Name: "current",
			Execute: func() (interface{}, error) {
				return s.runner.RunReport(ctx, s.cfg.GA4PropertyID,
					build(startDate, endDate, s.cfg.ConversionEvent))
			},
		},
		{
			Name: "comparison",
			Execute: func() (interface{}, error) {
				return s.runner.RunReport(ctx, s.cfg.GA4PropertyID,
					build(window.StartDate, window.EndDate, s.cfg.ConversionEvent))
			},
		},
	}

	results := async.NewPool(s.cfg.ReportWorkers).Execute(ctx, tasks)

	currentResult, ok := results["current"]
	if !ok {
		return nil, nil, fmt.Errorf("fetch %s report: %w", kind, ctx.Err())
	}
	if currentResult.Err != nil {
		return nil, nil, fmt.Errorf("fetch %s report: %w", kind, currentResult.Err)
	}
	current := currentResult.Data.(*ga4.ReportResponse)

	var comparison *ga4.ReportResponse
	if comparisonResult, ok := results["comparison"]; ok {
		if comparisonResult.Err != nil {
			s.logger.Warn("Comparison period report failed, continuing without deltas",
				slog.String("kind", kind), slog.Any("error", comparisonResult.Err))
		} else {
			comparison = comparisonResult.Data.(*ga4.ReportResponse)
		}
	}

	return current, comparison, nil
}

// Platforms builds the channel/LLM platform split.
func (s *Service) Platforms(ctx context.Context, startDate, endDate string) (*transform.PlatformSplitResult, error) {
	key := reports.CacheKey("platforms", s.cfg.GA4PropertyID, startDate, endDate)
	cached := &transform.PlatformSplitResult{}
	if hit, err := s.cache.Get(key, cached); err != nil {
		return nil, err
	} else if hit {
		return cached, nil
	}

	current, comparison, err := s.fetchPair(ctx, "platforms", startDate, endDate, ga4.TrafficReport)
	if err != nil {
		return nil, err
	}

	result := transform.PlatformSplit(current, comparison, s.logger)
	s.storeCached(key, "platforms", result)
	return result, nil
}

// LLMPlatforms builds the per-LLM-platform breakdown.
func (s *Service) LLMPlatforms(ctx context.Context, startDate, endDate string) (*transform.LLMPlatformsResult, error) {
	key := reports.CacheKey("llm-platforms", s.cfg.GA4PropertyID, startDate, endDate)
	cached := &transform.LLMPlatformsResult{}
	if hit, err := s.cache.Get(key, cached); err != nil {
		return nil, err
	} else if hit {
		return cached, nil
	}

	current, comparison, err := s.fetchPair(ctx, "llm-platforms", startDate, endDate, ga4.TrafficReport)
	if err != nil {
		return nil, err
	}

	result := transform.LLMPlatforms(current, comparison, s.logger)
	s.storeCached(key, "llm-platforms", result)
	return result, nil
}

// Geo builds the per-country breakdown.
func (s *Service) Geo(ctx context.Context, startDate, endDate string) (*transform.GeoResult, error) {
	key := reports.CacheKey("geo", s.cfg.GA4PropertyID, startDate, endDate)
	cached := &transform.GeoResult{}
	if hit, err := s.cache.Get(key, cached); err != nil {
		return nil, err
	} else if hit {
		return cached, nil
	}

	current, comparison, err := s.fetchPair(ctx, "geo", startDate, endDate, ga4.GeoReport)
	if err != nil {
		return nil, err
	}

	result := transform.Geo(current, comparison, s.logger)
	s.storeCached(key, "geo", result)
	return result, nil
}

// Devices builds the device, OS and browser breakdowns.
func (s *Service) Devices(ctx context.Context, startDate, endDate string) (*transform.DeviceResult, error) {
	key := reports.CacheKey("devices", s.cfg.GA4PropertyID, startDate, endDate)
	cached := &transform.DeviceResult{}
	if hit, err := s.cache.Get(key, cached); err != nil {
		return nil, err
	} else if hit {
		return cached, nil
	}

	current, comparison, err := s.fetchPair(ctx, "devices", startDate, endDate, ga4.DeviceReport)
	if err != nil {
		return nil, err
	}

	result := transform.Devices(current, comparison, s.logger)
	s.storeCached(key, "devices", result)
	return result, nil
}

// Pages builds the per-page breakdown with LLM shares and quality scores.
func (s *Service) Pages(ctx context.Context, startDate, endDate string) (*transform.PagesResult, error) {
	key := reports.CacheKey("pages", s.cfg.GA4PropertyID, startDate, endDate)
	cached := &transform.PagesResult{}
	if hit, err := s.cache.Get(key, cached); err != nil {
		return nil, err
	} else if hit {
		return cached, nil
	}

	current, comparison, err := s.fetchPair(ctx, "pages", startDate, endDate, ga4.PagesReport)
	if err != nil {
		return nil, err
	}

	result := transform.Pages(current, comparison, s.logger)
	s.storeCached(key, "pages", result)
	return result, nil
}

// Trend builds the daily session series. The trend view has no
// comparison period; only the current range is fetched.
func (s *Service) Trend(ctx context.Context, startDate, endDate string) (*transform.TrendResult, error) {
	key := reports.CacheKey("trend", s.cfg.GA4PropertyID, startDate, endDate)
	cached := &transform.TrendResult{}
	if hit, err := s.cache.Get(key, cached); err != nil {
		return nil, err
	} else if hit {
		return cached, nil
	}

	current, err := s.runner.RunReport(ctx, s.cfg.GA4PropertyID,
		ga4.TrendReport(startDate, endDate, s.cfg.ConversionEvent))
	if err != nil {
		return nil, fmt.Errorf("fetch trend report: %w", err)
	}

	result := transform.Trend(current, s.logger)
	s.storeCached(key, "trend", result)
	return result, nil
}

// storeCached writes through to the cache; a failed write is logged and
// swallowed because the response is already computed.
func (s *Service) storeCached(key, kind string, payload interface{}) {
	if err := s.cache.Store(key, kind, payload); err != nil {
		s.logger.Warn("Failed to cache report payload",
			slog.String("kind", kind), slog.Any("error", err))
	}
}
