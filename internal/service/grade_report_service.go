package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/gema-grade-evaluator/internal/dto"
	"github.com/noah-isme/gema-grade-evaluator/internal/observability"
)

// ErrInvalidEvaluationRequest indicates the request payload failed validation.
var ErrInvalidEvaluationRequest = errors.New("invalid evaluation request")

// GradeReportService evaluates grading requests coming from transport layers.
type GradeReportService interface {
	Evaluate(ctx context.Context, payload dto.EvaluateGradesRequest) (dto.EvaluateGradesResponse, error)
}

type gradeReportService struct {
	evaluator GradeEvaluator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradeReportService constructs the report service around an evaluator.
func NewGradeReportService(evaluator GradeEvaluator, validator *validator.Validate, logger zerolog.Logger) GradeReportService {
	return &gradeReportService{
		evaluator: evaluator,
		validator: validator,
		logger:    logger.With().Str("component", "grade_report_service").Logger(),
	}
}

func (s *gradeReportService) Evaluate(ctx context.Context, payload dto.EvaluateGradesRequest) (dto.EvaluateGradesResponse, error) {
	tracer := otel.Tracer("github.com/noah-isme/gema-grade-evaluator/internal/service/grade_report")
	_, span := tracer.Start(ctx, "grading.evaluate")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		observability.Evaluations().WithLabelValues("invalid").Inc()
		return dto.EvaluateGradesResponse{}, fmt.Errorf("%w: %w", ErrInvalidEvaluationRequest, err)
	}

	pinned, err := payload.PinnedNow()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		observability.Evaluations().WithLabelValues("invalid").Inc()
		return dto.EvaluateGradesResponse{}, fmt.Errorf("%w: evaluated_at: %w", ErrInvalidEvaluationRequest, err)
	}

	course := *payload.Course
	group := *payload.AssignmentGroup
	span.SetAttributes(
		attribute.Int64("grading.course_id", course.ID),
		attribute.Int64("grading.assignment_group_id", group.ID),
		attribute.Int("grading.assignments", len(group.Assignments)),
		attribute.Int("grading.submissions", len(payload.Submissions)),
	)
	if payload.LearnerID != nil {
		span.SetAttributes(attribute.Int64("grading.learner_id", *payload.LearnerID))
	}

	evaluation, err := s.evaluator.EvaluateDetailed(course, group, payload.Submissions, EvaluationOptions{
		LearnerID: payload.LearnerID,
		Now:       pinned,
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrAssignmentGroupMismatch) {
			span.SetStatus(codes.Error, "assignment_group_mismatch")
			observability.Evaluations().WithLabelValues("mismatch").Inc()
			s.logger.Warn().Err(err).Int64("course_id", course.ID).Int64("assignment_group_id", group.ID).Msg("assignment group rejected")
		} else {
			span.SetStatus(codes.Error, "evaluation_failed")
			observability.Evaluations().WithLabelValues("error").Inc()
		}
		return dto.EvaluateGradesResponse{}, err
	}

	observability.Evaluations().WithLabelValues("success").Inc()
	for _, skip := range evaluation.Skipped {
		observability.SkippedAssignments().WithLabelValues(string(skip.Reason)).Inc()
	}
	if evaluation.LateCount > 0 {
		observability.LateSubmissions().Add(float64(evaluation.LateCount))
	}

	span.SetAttributes(
		attribute.Int("grading.results", len(evaluation.Results)),
		attribute.Int("grading.skipped", len(evaluation.Skipped)),
		attribute.Int("grading.late", evaluation.LateCount),
	)

	return newEvaluateGradesResponse(course.ID, group.ID, payload.LearnerID, evaluation), nil
}

func newEvaluateGradesResponse(courseID, groupID int64, learnerID *int64, evaluation Evaluation) dto.EvaluateGradesResponse {
	skipped := make([]dto.SkippedAssignmentResponse, 0, len(evaluation.Skipped))
	for _, skip := range evaluation.Skipped {
		skipped = append(skipped, dto.SkippedAssignmentResponse{
			AssignmentID:   skip.AssignmentID,
			AssignmentName: skip.AssignmentName,
			Reason:         string(skip.Reason),
			Detail:         skip.Detail,
		})
	}

	return dto.EvaluateGradesResponse{
		CourseID:          courseID,
		AssignmentGroupID: groupID,
		LearnerID:         learnerID,
		EvaluatedAt:       evaluation.EvaluatedAt.UTC(),
		Results:           evaluation.Results,
		Skipped:           skipped,
	}
}
