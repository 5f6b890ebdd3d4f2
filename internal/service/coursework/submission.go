package coursework

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"classroom/internal/config"
	"classroom/internal/domain"
	models "classroom/internal/domain/models/coursework"
	courseworkRepo "classroom/internal/domain/repositories/coursework"
	courseworkSvc "classroom/internal/domain/services/coursework"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// submissionService implements the SubmissionService interface
type submissionService struct {
	submissionRepo courseworkRepo.SubmissionRepository
	assignments    courseworkSvc.ExistenceChecker
	logger         *slog.Logger
}

// NewSubmissionService creates a new submission service. assignments
// confirms that the assignment exists in teacher-service.
func NewSubmissionService(
	submissionRepo courseworkRepo.SubmissionRepository,
	assignments courseworkSvc.ExistenceChecker,
	logger *slog.Logger,
) courseworkSvc.SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		assignments:    assignments,
		logger:         logger,
	}
}

// CreateSubmission stores a student's answer after confirming the assignment exists
func (s *submissionService) CreateSubmission(ctx context.Context, req *courseworkSvc.CreateSubmissionRequest) (*models.Submission, error) {
	if err := validateCreateSubmission(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.assignments.Exists(ctx, req.AssignmentID, req.Credential); err != nil {
		s.logger.Warn("assignment lookup failed",
			"assignment_id", req.AssignmentID,
			"error", err,
		)
		return nil, err
	}

	submission := &models.Submission{
		ID:           uuid.NewString(),
		AssignmentID: req.AssignmentID,
		StudentID:    req.StudentID,
		Content:      req.Content,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info("submission created",
		"id", submission.ID,
		"assignment_id", submission.AssignmentID,
		"student_id", submission.StudentID,
	)

	return submission, nil
}

// GetSubmission retrieves one of the student's own submissions
func (s *submissionService) GetSubmission(ctx context.Context, id, studentID string) (*models.Submission, error) {
	return s.submissionRepo.GetByID(ctx, id, studentID)
}

// ListSubmissions retrieves the student's own submissions
func (s *submissionService) ListSubmissions(ctx context.Context, studentID string) ([]models.Submission, error) {
	submissions, err := s.submissionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []models.Submission{}
	}
	return submissions, nil
}

func validateCreateSubmission(req *courseworkSvc.CreateSubmissionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.AssignmentID, validation.Required, validation.By(isUUID)),
		validation.Field(&req.StudentID, validation.Required),
		validation.Field(&req.Content, validation.RuneLength(0, config.MaxSubmissionContentLength)),
	)
}
