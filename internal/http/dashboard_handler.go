package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"visionly/internal/timeframe"
)

// Query parameters accepted by every dashboard endpoint. Values take any
// GA4 report date form; missing values default to the trailing week.
const (
	queryStartDate = "start_date"
	queryEndDate   = "end_date"
)

func requestedRange(c *fiber.Ctx) (string, string) {
	start := c.Query(queryStartDate, timeframe.DefaultComparisonStart)
	end := c.Query(queryEndDate, timeframe.DefaultComparisonEnd)
	return start, end
}

func (s *Service) respondError(c *fiber.Ctx, kind string, err error) error {
	s.logger.Error("Dashboard report failed",
		slog.String("kind", kind), slog.Any("error", err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to build " + kind + " report",
	})
}

// PlatformsAction serves the channel split with the LLM rollup.
func (s *Service) PlatformsAction(c *fiber.Ctx) error {
	start, end := requestedRange(c)
	result, err := s.Platforms(c.UserContext(), start, end)
	if err != nil {
		return s.respondError(c, "platforms", err)
	}
	return c.JSON(result)
}

// LLMPlatformsAction serves the per-LLM-platform breakdown.
func (s *Service) LLMPlatformsAction(c *fiber.Ctx) error {
	start, end := requestedRange(c)
	result, err := s.LLMPlatforms(c.UserContext(), start, end)
	if err != nil {
		return s.respondError(c, "llm-platforms", err)
	}
	return c.JSON(result)
}

// GeoAction serves the per-country breakdown.
func (s *Service) GeoAction(c *fiber.Ctx) error {
	start, end := requestedRange(c)
	result, err := s.Geo(c.UserContext(), start, end)
	if err != nil {
		return s.respondError(c, "geo", err)
	}
	return c.JSON(result)
}

// DevicesAction serves the device, OS and browser breakdowns.
func (s *Service) DevicesAction(c *fiber.Ctx) error {
	start, end := requestedRange(c)
	result, err := s.Devices(c.UserContext(), start, end)
	if err != nil {
		return s.respondError(c, "devices", err)
	}
	return c.JSON(result)
}

// PagesAction serves the per-page breakdown.
func (s *Service) PagesAction(c *fiber.Ctx) error {
	start, end := requestedRange(c)
	result, err := s.Pages(c.UserContext(), start, end)
	if err != nil {
		return s.respondError(c, "pages", err)
	}
	return c.JSON(result)
}

// TrendAction serves the daily session series.
func (s *Service) TrendAction(c *fiber.Ctx) error {
	start, end := requestedRange(c)
	result, err := s.Trend(c.UserContext(), start, end)
	if err != nil {
		return s.respondError(c, "trend", err)
	}
	return c.JSON(result)
}
