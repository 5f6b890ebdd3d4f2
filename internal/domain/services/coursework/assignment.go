package coursework

import (
	"context"

	"classroom/internal/domain/models/coursework"
)

// CreateAssignmentRequest represents a request to create an assignment.
// CourseID comes from the path; Credential is the caller's bearer token,
// forwarded to admin-service to verify the course.
type CreateAssignmentRequest struct {
	CourseID   string `json:"-"`
	Title      string `json:"title"`
	Credential string `json:"-"`
}

// AssignmentService defines business logic operations for assignments
type AssignmentService interface {
	// CreateAssignment verifies the course exists, then stores the assignment
	CreateAssignment(ctx context.Context, req *CreateAssignmentRequest) (*coursework.Assignment, error)
	GetAssignment(ctx context.Context, id string) (*coursework.Assignment, error)

	// ListAssignments lists a course's assignments. The course itself is not
	// verified; an unknown course yields an empty list.
	ListAssignments(ctx context.Context, courseID string) ([]coursework.Assignment, error)
}
