package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-grade-evaluator/internal/models"
)

// DefaultLatePenalty is the fraction deducted from late submissions.
const DefaultLatePenalty = 0.1

var (
	// ErrAssignmentGroupMismatch indicates the assignment group belongs to another course.
	ErrAssignmentGroupMismatch = errors.New("assignment group does not belong to course")
	// ErrInvalidPointsPossible indicates an assignment has non-numeric or non-positive points.
	ErrInvalidPointsPossible = errors.New("invalid points possible")
	// ErrInvalidDueDate indicates an assignment due date could not be parsed.
	ErrInvalidDueDate = errors.New("invalid due date")
	// ErrInvalidSubmittedAt indicates a matched submission carries an unparseable timestamp.
	ErrInvalidSubmittedAt = errors.New("invalid submission timestamp")
)

// AssignmentGroupMismatchError describes the course/group disagreement.
type AssignmentGroupMismatchError struct {
	GroupID       int64
	GroupCourseID int64
	CourseID      int64
}

func (e *AssignmentGroupMismatchError) Error() string {
	return fmt.Sprintf("assignment group %d belongs to course %d, not course %d", e.GroupID, e.GroupCourseID, e.CourseID)
}

// Is lets errors.Is match the sentinel.
func (e *AssignmentGroupMismatchError) Is(target error) bool {
	return target == ErrAssignmentGroupMismatch
}

// SkipReason explains why an assignment produced no result.
type SkipReason string

const (
	SkipReasonNotDue             SkipReason = "not_due"
	SkipReasonInvalidPoints      SkipReason = "invalid_points_possible"
	SkipReasonInvalidDueDate     SkipReason = "invalid_due_date"
	SkipReasonInvalidSubmittedAt SkipReason = "invalid_submitted_at"
)

// SkippedAssignment records an assignment excluded from the results.
type SkippedAssignment struct {
	AssignmentID   int64      `json:"assignment_id"`
	AssignmentName string     `json:"assignment_name"`
	Reason         SkipReason `json:"reason"`
	Detail         string     `json:"detail,omitempty"`
}

// Evaluation is the full outcome of one evaluation run.
type Evaluation struct {
	Results     []models.GradeResult
	Skipped     []SkippedAssignment
	EvaluatedAt time.Time
	LateCount   int
}

// EvaluationOptions adjusts a single evaluation run.
type EvaluationOptions struct {
	// LearnerID restricts submission lookup to one learner when set.
	LearnerID *int64
	// Now pins the evaluation instant when set, including the zero time.
	// Nil falls back to the evaluator clock.
	Now *time.Time
}

// GradeEvaluator computes per-assignment grading results for an assignment group.
type GradeEvaluator interface {
	Evaluate(course models.Course, group models.AssignmentGroup, submissions []models.Submission) ([]models.GradeResult, error)
	EvaluateForLearner(course models.Course, group models.AssignmentGroup, submissions []models.Submission, learnerID int64) ([]models.GradeResult, error)
	EvaluateDetailed(course models.Course, group models.AssignmentGroup, submissions []models.Submission, opts EvaluationOptions) (Evaluation, error)
}

// EvaluatorOption configures a GradeEvaluator.
type EvaluatorOption func(*gradeEvaluator)

// WithClock sets the source of the evaluation instant.
func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *gradeEvaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLatePenalty sets the fraction deducted from late submissions. Values outside [0,1] are ignored.
func WithLatePenalty(penalty float64) EvaluatorOption {
	return func(e *gradeEvaluator) {
		if penalty >= 0 && penalty <= 1 {
			e.latePenalty = penalty
		}
	}
}

type gradeEvaluator struct {
	logger      zerolog.Logger
	now         func() time.Time
	latePenalty float64
}

// NewGradeEvaluator builds an evaluator. It holds no mutable state and is safe for concurrent use.
func NewGradeEvaluator(logger zerolog.Logger, opts ...EvaluatorOption) GradeEvaluator {
	e := &gradeEvaluator{
		logger:      logger.With().Str("component", "grade_evaluator").Logger(),
		now:         time.Now,
		latePenalty: DefaultLatePenalty,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *gradeEvaluator) Evaluate(course models.Course, group models.AssignmentGroup, submissions []models.Submission) ([]models.GradeResult, error) {
	evaluation, err := e.EvaluateDetailed(course, group, submissions, EvaluationOptions{})
	if err != nil {
		return nil, err
	}
	return evaluation.Results, nil
}

func (e *gradeEvaluator) EvaluateForLearner(course models.Course, group models.AssignmentGroup, submissions []models.Submission, learnerID int64) ([]models.GradeResult, error) {
	evaluation, err := e.EvaluateDetailed(course, group, submissions, EvaluationOptions{LearnerID: &learnerID})
	if err != nil {
		return nil, err
	}
	return evaluation.Results, nil
}

func (e *gradeEvaluator) EvaluateDetailed(course models.Course, group models.AssignmentGroup, submissions []models.Submission, opts EvaluationOptions) (Evaluation, error) {
	if group.CourseID != course.ID {
		return Evaluation{}, &AssignmentGroupMismatchError{
			GroupID:       group.ID,
			GroupCourseID: group.CourseID,
			CourseID:      course.ID,
		}
	}

	var now time.Time
	if opts.Now != nil {
		now = *opts.Now
	} else {
		now = e.now()
	}

	index := indexSubmissions(submissions, opts.LearnerID)

	outcomes := make([]assignmentOutcome, 0, len(group.Assignments))
	for _, assignment := range group.Assignments {
		outcomes = append(outcomes, e.evaluateAssignment(assignment, index, now))
	}

	evaluation := Evaluation{
		Results:     make([]models.GradeResult, 0, len(outcomes)),
		Skipped:     make([]SkippedAssignment, 0),
		EvaluatedAt: now,
	}
	for _, outcome := range outcomes {
		if outcome.result != nil {
			evaluation.Results = append(evaluation.Results, *outcome.result)
			if outcome.late {
				evaluation.LateCount++
			}
			continue
		}

		evaluation.Skipped = append(evaluation.Skipped, outcome.skip)
		if outcome.diagnostic != nil {
			e.logger.Error().
				Err(outcome.diagnostic).
				Int64("course_id", course.ID).
				Int64("assignment_group_id", group.ID).
				Int64("assignment_id", outcome.skip.AssignmentID).
				Str("assignment_name", outcome.skip.AssignmentName).
				Str("reason", string(outcome.skip.Reason)).
				Msgf("error processing assignment %s: %v", outcome.skip.AssignmentName, outcome.diagnostic)
		}
	}

	return evaluation, nil
}

// assignmentOutcome is either a result or a skip. Only skips carrying a
// diagnostic are reported.
type assignmentOutcome struct {
	result     *models.GradeResult
	late       bool
	skip       SkippedAssignment
	diagnostic error
}

func skipped(assignment models.Assignment, reason SkipReason, diagnostic error) assignmentOutcome {
	outcome := assignmentOutcome{
		skip: SkippedAssignment{
			AssignmentID:   assignment.ID,
			AssignmentName: assignment.Name,
			Reason:         reason,
		},
		diagnostic: diagnostic,
	}
	if diagnostic != nil {
		outcome.skip.Detail = diagnostic.Error()
	}
	return outcome
}

func (e *gradeEvaluator) evaluateAssignment(assignment models.Assignment, index map[int64]models.Submission, now time.Time) assignmentOutcome {
	if !assignment.PointsPossible.Valid() {
		err := fmt.Errorf("%w: points_possible %q must be a positive number", ErrInvalidPointsPossible, assignment.PointsPossible.String())
		return skipped(assignment, SkipReasonInvalidPoints, err)
	}

	due, isDue, err := assignment.IsDue(now)
	if err != nil {
		return skipped(assignment, SkipReasonInvalidDueDate, fmt.Errorf("%w: %v", ErrInvalidDueDate, err))
	}
	if !isDue {
		return skipped(assignment, SkipReasonNotDue, nil)
	}

	result := models.GradeResult{
		AssignmentID:   assignment.ID,
		AssignmentName: assignment.Name,
		PointsPossible: assignment.PointsPossible.Value,
		DueAt:          due,
	}

	submission, found := index[assignment.ID]
	if !found {
		return assignmentOutcome{result: &result}
	}

	submittedAt, late, err := submission.IsLate(due)
	if err != nil {
		return skipped(assignment, SkipReasonInvalidSubmittedAt, fmt.Errorf("%w: %v", ErrInvalidSubmittedAt, err))
	}

	result.Score = submission.Submission.Score
	if late {
		result.Score = submission.Submission.Score * (1 - e.latePenalty)
	}
	result.SubmittedAt = &submittedAt

	return assignmentOutcome{result: &result, late: late}
}

// indexSubmissions keeps the first submission per assignment, optionally for one learner only.
func indexSubmissions(submissions []models.Submission, learnerID *int64) map[int64]models.Submission {
	index := make(map[int64]models.Submission, len(submissions))
	for _, submission := range submissions {
		if learnerID != nil && submission.LearnerID != *learnerID {
			continue
		}
		if _, exists := index[submission.AssignmentID]; !exists {
			index[submission.AssignmentID] = submission
		}
	}
	return index
}
