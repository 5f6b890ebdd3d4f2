package coursework

import (
	"context"

	"classroom/internal/domain/models/coursework"
)

// SubmissionRepository defines data access operations for submissions
type SubmissionRepository interface {
	Create(ctx context.Context, submission *coursework.Submission) error

	// GetByID retrieves a submission owned by studentID
	GetByID(ctx context.Context, id, studentID string) (*coursework.Submission, error)

	// ListByStudent retrieves a student's submissions, newest first
	ListByStudent(ctx context.Context, studentID string) ([]coursework.Submission, error)
}
