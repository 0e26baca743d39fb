package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-grade-evaluator/internal/config"
	"github.com/noah-isme/gema-grade-evaluator/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	LatePenalty float64   `json:"late_penalty"`
	PinnedNow   *string   `json:"pinned_now,omitempty"`
}

// HealthCheck returns a handler that reports service health and grading settings.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			LatePenalty: cfg.LatePenalty,
		}
		if cfg.PinnedNow != nil {
			pinned := cfg.PinnedNow.UTC().Format(time.RFC3339)
			payload.PinnedNow = &pinned
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
