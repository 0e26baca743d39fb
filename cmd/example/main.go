// Command example evaluates a fixed sample assignment group and prints the results.
package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-grade-evaluator/internal/models"
	"github.com/noah-isme/gema-grade-evaluator/internal/service"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	course := models.Course{ID: 1, Name: "Mathematics"}
	group := models.AssignmentGroup{
		ID:          10,
		Name:        "Homework",
		GroupWeight: 0.5,
		CourseID:    1,
		Assignments: []models.Assignment{
			{ID: 1, Name: "Algebra", DueAt: "2023-10-01T23:59:59Z", PointsPossible: models.NewPoints(100)},
			{ID: 2, Name: "Geometry", DueAt: "2023-10-05T23:59:59Z", PointsPossible: models.NewPoints(0)},
			{ID: 3, Name: "Calculus", DueAt: "2023-10-10T23:59:59Z", PointsPossible: models.NewPoints(50)},
		},
	}
	submissions := []models.Submission{
		{LearnerID: 101, AssignmentID: 1, Submission: models.SubmissionDetail{SubmittedAt: "2023-09-30T12:00:00Z", Score: 90}},
		{LearnerID: 101, AssignmentID: 3, Submission: models.SubmissionDetail{SubmittedAt: "2023-10-11T12:00:00Z", Score: 40}},
	}

	now := time.Date(2023, 10, 10, 23, 59, 59, 0, time.UTC)
	evaluator := service.NewGradeEvaluator(logger, service.WithClock(func() time.Time { return now }))

	results, err := evaluator.Evaluate(course, group, submissions)
	if err != nil {
		log.Fatalf("failed to evaluate grades: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		log.Fatalf("failed to encode results: %v", err)
	}
}
