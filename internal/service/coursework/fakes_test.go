package coursework

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"classroom/internal/domain"
	models "classroom/internal/domain/models/coursework"
	"classroom/internal/resilience"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memCourseRepo struct {
	mu      sync.Mutex
	courses []models.Course
}

func (r *memCourseRepo) Create(ctx context.Context, c *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses = append(r.courses, *c)
	return nil
}

func (r *memCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
}

func (r *memCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Course(nil), r.courses...), nil
}

type memAssignmentRepo struct {
	mu          sync.Mutex
	assignments []models.Assignment
}

func (r *memAssignmentRepo) Create(ctx context.Context, a *models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments = append(r.assignments, *a)
	return nil
}

func (r *memAssignmentRepo) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("assignment %s: %w", id, domain.ErrNotFound)
}

func (r *memAssignmentRepo) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Assignment
	for _, a := range r.assignments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memSubmissionRepo struct {
	mu          sync.Mutex
	submissions []models.Submission
}

func (r *memSubmissionRepo) Create(ctx context.Context, s *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, *s)
	return nil
}

func (r *memSubmissionRepo) GetByID(ctx context.Context, id, studentID string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.submissions {
		if s.ID == id && s.StudentID == studentID {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
}

func (r *memSubmissionRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Submission
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

// stubCaller records calls and returns a canned result.
type stubCaller struct {
	err   error
	calls []stubCall
}

type stubCall struct {
	destination, path, credential string
}

func (c *stubCaller) Call(ctx context.Context, destination, path, credential string) (*resilience.Response, error) {
	c.calls = append(c.calls, stubCall{destination, path, credential})
	if c.err != nil {
		return nil, c.err
	}
	return &resilience.Response{StatusCode: 200, Body: []byte(`{}`)}, nil
}

func upstreamStatus(status int) error {
	return &resilience.ClientError{
		Kind:        resilience.ClientUpstreamFailure,
		Destination: "course-service",
		Err:         &resilience.CallError{Kind: resilience.CallNonSuccessStatus, Method: "GET", URL: "http://admin/x", StatusCode: status},
	}
}
