package models

// Course identifies the course an assignment group must belong to.
type Course struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
