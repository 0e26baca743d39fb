package dto

import (
	"time"

	"github.com/noah-isme/gema-grade-evaluator/internal/models"
)

const isoLayout = time.RFC3339

// EvaluateGradesRequest is the payload accepted by the evaluate endpoint.
type EvaluateGradesRequest struct {
	Course          *models.Course          `json:"course" validate:"required"`
	AssignmentGroup *models.AssignmentGroup `json:"assignment_group" validate:"required"`
	Submissions     []models.Submission     `json:"submissions"`
	LearnerID       *int64                  `json:"learner_id" validate:"omitempty,gt=0"`
	EvaluatedAt     string                  `json:"evaluated_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// PinnedNow returns the requested evaluation instant, or nil when none was given.
func (r EvaluateGradesRequest) PinnedNow() (*time.Time, error) {
	if r.EvaluatedAt == "" {
		return nil, nil
	}
	parsed, err := time.Parse(isoLayout, r.EvaluatedAt)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// SkippedAssignmentResponse explains why an assignment produced no result.
type SkippedAssignmentResponse struct {
	AssignmentID   int64  `json:"assignment_id"`
	AssignmentName string `json:"assignment_name"`
	Reason         string `json:"reason"`
	Detail         string `json:"detail,omitempty"`
}

// EvaluateGradesResponse is the serialized evaluation returned to API clients.
type EvaluateGradesResponse struct {
	CourseID          int64                       `json:"course_id"`
	AssignmentGroupID int64                       `json:"assignment_group_id"`
	LearnerID         *int64                      `json:"learner_id,omitempty"`
	EvaluatedAt       time.Time                   `json:"evaluated_at"`
	Results           []models.GradeResult        `json:"results"`
	Skipped           []SkippedAssignmentResponse `json:"skipped"`
}
