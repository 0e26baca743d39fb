package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-grade-evaluator/internal/config"
	"github.com/noah-isme/gema-grade-evaluator/internal/handler"
	"github.com/noah-isme/gema-grade-evaluator/internal/middleware"
	"github.com/noah-isme/gema-grade-evaluator/internal/router"
	"github.com/noah-isme/gema-grade-evaluator/internal/service"
	"github.com/noah-isme/gema-grade-evaluator/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	validate := utils.NewValidator()

	evaluator := service.NewGradeEvaluator(logger,
		service.WithClock(cfg.Clock()),
		service.WithLatePenalty(cfg.LatePenalty),
	)
	reportService := service.NewGradeReportService(evaluator, validate, logger)
	gradeHandler := handler.NewGradeHandler(reportService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})

	deps := router.Dependencies{GradeHandler: gradeHandler}
	if cfg.AuthEnabled() {
		deps.JWTMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	} else {
		logger.Warn().Msg("GEMA_JWT_SECRET not set; grading routes are unauthenticated")
	}
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
