package coursework

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"classroom/internal/config"
	"classroom/internal/domain"
	models "classroom/internal/domain/models/coursework"
	courseworkRepo "classroom/internal/domain/repositories/coursework"
	courseworkSvc "classroom/internal/domain/services/coursework"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// courseService implements the CourseService interface
type courseService struct {
	courseRepo courseworkRepo.CourseRepository
	logger     *slog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo courseworkRepo.CourseRepository,
	logger *slog.Logger,
) courseworkSvc.CourseService {
	return &courseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// CreateCourse creates a new course
func (s *courseService) CreateCourse(ctx context.Context, req *courseworkSvc.CreateCourseRequest) (*models.Course, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateCreateCourse(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	course := &models.Course{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created",
		"id", course.ID,
		"name", course.Name,
	)

	return course, nil
}

// GetCourse retrieves a course by ID
func (s *courseService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses retrieves all courses
func (s *courseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

func validateCreateCourse(req *courseworkSvc.CreateCourseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("name cannot be empty"),
			validation.RuneLength(1, config.MaxCourseNameLength),
		),
	)
}
