package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-grade-evaluator/internal/dto"
	"github.com/noah-isme/gema-grade-evaluator/internal/middleware"
	"github.com/noah-isme/gema-grade-evaluator/internal/service"
	"github.com/noah-isme/gema-grade-evaluator/internal/utils"
)

// GradeHandler exposes grade evaluation over HTTP.
type GradeHandler struct {
	service service.GradeReportService
	logger  zerolog.Logger
}

// NewGradeHandler creates a new handler instance.
func NewGradeHandler(service service.GradeReportService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register attaches the grading endpoints.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Post("/evaluate", h.evaluate)
}

func (h *GradeHandler) evaluate(c *fiber.Ctx) error {
	var payload dto.EvaluateGradesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Evaluate(c.UserContext(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEvaluationRequest):
			return utils.Fail(c, fiber.StatusBadRequest, "invalid evaluation request", validationDetails(err))
		case errors.Is(err, service.ErrAssignmentGroupMismatch):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("failed to evaluate grades")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate grades")
		}
	}

	return utils.SendSuccess(c, "grades evaluated", response)
}
