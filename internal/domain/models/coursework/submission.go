package coursework

import (
	"time"
)

type Submission struct {
	ID           string    `json:"id" db:"id"`
	AssignmentID string    `json:"assignment_id" db:"assignment_id"`
	StudentID    string    `json:"student_id" db:"student_id"` // token subject of the submitting student
	Content      *string   `json:"content" db:"content"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
