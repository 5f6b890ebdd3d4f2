package coursework

import (
	"context"

	"classroom/internal/domain/models/coursework"
)

// AssignmentRepository defines data access operations for assignments
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *coursework.Assignment) error
	GetByID(ctx context.Context, id string) (*coursework.Assignment, error)

	// ListByCourse retrieves a course's assignments, newest first
	ListByCourse(ctx context.Context, courseID string) ([]coursework.Assignment, error)
}
