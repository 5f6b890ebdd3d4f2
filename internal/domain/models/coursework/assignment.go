package coursework

import (
	"time"
)

// Assignment belongs to a course owned by admin-service. CourseID is not a
// foreign key; the course is verified over HTTP at creation time.
type Assignment struct {
	ID        string    `json:"id" db:"id"`
	CourseID  string    `json:"course_id" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
