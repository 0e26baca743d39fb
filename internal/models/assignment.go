package models

import (
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// AssignmentGroup is a weighted bucket of assignments inside a course.
type AssignmentGroup struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	GroupWeight float64      `json:"group_weight"`
	CourseID    int64        `json:"course_id"`
	Assignments []Assignment `json:"assignments"`
}

// Assignment represents a gradable item with an ISO-8601 due date.
type Assignment struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DueAt          string `json:"due_at"`
	PointsPossible Points `json:"points_possible"`
}

// DueTime parses the assignment due date.
func (a Assignment) DueTime() (time.Time, error) {
	return ParseTimestamp(a.DueAt)
}

// IsDue parses the deadline and reports whether it is not strictly after reference.
func (a Assignment) IsDue(reference time.Time) (due time.Time, ok bool, err error) {
	due, err = a.DueTime()
	if err != nil {
		return time.Time{}, false, err
	}
	return due, !due.After(reference), nil
}

// ParseTimestamp accepts RFC 3339 timestamps and plain dates (midnight UTC).
func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed, nil
	}

	parsed, err := time.ParseInLocation(dateOnlyLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}
	return parsed, nil
}
