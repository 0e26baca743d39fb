package models

import "time"

// Submission is a learner's attempt at an assignment.
type Submission struct {
	LearnerID    int64            `json:"learner_id"`
	AssignmentID int64            `json:"assignment_id"`
	Submission   SubmissionDetail `json:"submission"`
}

// SubmissionDetail carries the timestamp and raw score of a submission.
type SubmissionDetail struct {
	SubmittedAt string  `json:"submitted_at"`
	Score       float64 `json:"score"`
}

// SubmittedTime parses the submission timestamp.
func (s Submission) SubmittedTime() (time.Time, error) {
	return ParseTimestamp(s.Submission.SubmittedAt)
}

// IsLate parses the submission time and reports whether it is strictly after due.
func (s Submission) IsLate(due time.Time) (submitted time.Time, late bool, err error) {
	submitted, err = s.SubmittedTime()
	if err != nil {
		return time.Time{}, false, err
	}
	return submitted, submitted.After(due), nil
}
