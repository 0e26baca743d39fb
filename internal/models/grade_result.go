package models

import "time"

// GradeResult is the per-assignment outcome returned to callers.
type GradeResult struct {
	AssignmentID   int64      `json:"assignment_id"`
	AssignmentName string     `json:"assignment_name"`
	PointsPossible float64    `json:"points_possible"`
	Score          float64    `json:"score"`
	SubmittedAt    *time.Time `json:"submitted_at"`
	DueAt          time.Time  `json:"due_at"`
}

// Submitted reports whether a submission was matched for the assignment.
func (r GradeResult) Submitted() bool {
	return r.SubmittedAt != nil
}
