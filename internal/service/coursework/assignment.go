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

// assignmentService implements the AssignmentService interface
type assignmentService struct {
	assignmentRepo courseworkRepo.AssignmentRepository
	courses        courseworkSvc.ExistenceChecker
	logger         *slog.Logger
}

// NewAssignmentService creates a new assignment service. courses confirms
// that the parent course exists in admin-service.
func NewAssignmentService(
	assignmentRepo courseworkRepo.AssignmentRepository,
	courses courseworkSvc.ExistenceChecker,
	logger *slog.Logger,
) courseworkSvc.AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		courses:        courses,
		logger:         logger,
	}
}

// CreateAssignment creates an assignment after confirming its course exists
func (s *assignmentService) CreateAssignment(ctx context.Context, req *courseworkSvc.CreateAssignmentRequest) (*models.Assignment, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateCreateAssignment(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Validation first: a bad body must not cost a cross-service call
	if err := s.courses.Exists(ctx, req.CourseID, req.Credential); err != nil {
		s.logger.Warn("course lookup failed",
			"course_id", req.CourseID,
			"error", err,
		)
		return nil, err
	}

	assignment := &models.Assignment{
		ID:        uuid.NewString(),
		CourseID:  req.CourseID,
		Title:     req.Title,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info("assignment created",
		"id", assignment.ID,
		"course_id", assignment.CourseID,
		"title", assignment.Title,
	)

	return assignment, nil
}

// GetAssignment retrieves an assignment by ID
func (s *assignmentService) GetAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	return s.assignmentRepo.GetByID(ctx, id)
}

// ListAssignments retrieves a course's assignments
func (s *assignmentService) ListAssignments(ctx context.Context, courseID string) ([]models.Assignment, error) {
	assignments, err := s.assignmentRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, nil
}

func validateCreateAssignment(req *courseworkSvc.CreateAssignmentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CourseID, validation.Required, validation.By(isUUID)),
		validation.Field(&req.Title,
			validation.Required.Error("title cannot be empty"),
			validation.RuneLength(1, config.MaxAssignmentTitleLength),
		),
	)
}
