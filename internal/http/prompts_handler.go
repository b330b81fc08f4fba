package http

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"visionly/internal/promptcache"
)

type promptCheckRequest struct {
	Prompt string `json:"prompt"`
}

type promptCheckResponse struct {
	Fingerprint string `json:"fingerprint"`
	Seen        bool   `json:"seen"`
}

// PromptCheckAction records a prompt fingerprint and reports whether an
// equivalent prompt was already seen within the retention window.
func PromptCheckAction(store *promptcache.Store, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req promptCheckRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if strings.TrimSpace(req.Prompt) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Prompt is required",
			})
		}

		seen, err := store.Seen(req.Prompt)
		if err != nil {
			logger.Error("Prompt fingerprint lookup failed", slog.Any("error", err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record prompt",
			})
		}

		return c.JSON(promptCheckResponse{
			Fingerprint: promptcache.Fingerprint(req.Prompt),
			Seen:        seen,
		})
	}
}
