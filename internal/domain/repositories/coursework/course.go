package coursework

import (
	"context"

	"classroom/internal/domain/models/coursework"
)

// CourseRepository defines data access operations for courses
type CourseRepository interface {
	// Create inserts a course; ID and CreatedAt must already be set
	Create(ctx context.Context, course *coursework.Course) error

	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id string) (*coursework.Course, error)

	// List retrieves all courses, newest first
	List(ctx context.Context) ([]coursework.Course, error)
}
