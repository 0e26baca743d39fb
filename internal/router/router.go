package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-grade-evaluator/internal/config"
	"github.com/noah-isme/gema-grade-evaluator/internal/handler"
	"github.com/noah-isme/gema-grade-evaluator/internal/middleware"
	"github.com/noah-isme/gema-grade-evaluator/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	GradeHandler  *handler.GradeHandler
	JWTMiddleware fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.GradeHandler == nil {
		return
	}

	guards := []fiber.Handler{}
	if deps.JWTMiddleware != nil {
		guards = append(guards, deps.JWTMiddleware, middleware.RequireRole(middleware.RoleAdmin, middleware.RoleTeacher))
	}
	guards = append(guards, middleware.RateLimit("grading", cfg.RateLimit, time.Minute))

	grades := api.Group("/grades", guards...)
	deps.GradeHandler.Register(grades)
}
