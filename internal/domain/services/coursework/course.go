package coursework

import (
	"context"

	"classroom/internal/domain/models/coursework"
)

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Name string `json:"name"`
}

// CourseService defines business logic operations for courses
type CourseService interface {
	CreateCourse(ctx context.Context, req *CreateCourseRequest) (*coursework.Course, error)
	GetCourse(ctx context.Context, id string) (*coursework.Course, error)
	ListCourses(ctx context.Context) ([]coursework.Course, error)
}
