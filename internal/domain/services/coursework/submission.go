package coursework

import (
	"context"

	"classroom/internal/domain/models/coursework"
)

// CreateSubmissionRequest represents a request to submit an answer.
// StudentID is the token subject, never taken from the body.
type CreateSubmissionRequest struct {
	AssignmentID string  `json:"-"`
	StudentID    string  `json:"-"`
	Content      *string `json:"content"`
	Credential   string  `json:"-"`
}

// SubmissionService defines business logic operations for submissions
type SubmissionService interface {
	// CreateSubmission verifies the assignment exists, then stores the submission
	CreateSubmission(ctx context.Context, req *CreateSubmissionRequest) (*coursework.Submission, error)
	GetSubmission(ctx context.Context, id, studentID string) (*coursework.Submission, error)
	ListSubmissions(ctx context.Context, studentID string) ([]coursework.Submission, error)
}
