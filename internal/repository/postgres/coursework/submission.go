package coursework

import (
	"context"
	"fmt"

	"classroom/internal/domain"
	models "classroom/internal/domain/models/coursework"
	courseworkRepo "classroom/internal/domain/repositories/coursework"

	"classroom/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSubmissionRepository implements the SubmissionRepository interface
type PostgresSubmissionRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(config *postgres.RepositoryConfig) courseworkRepo.SubmissionRepository {
	return &PostgresSubmissionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a submission
func (r *PostgresSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, assignment_id, student_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Submissions)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		submission.ID,
		submission.AssignmentID,
		submission.StudentID,
		submission.Content,
		submission.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("submission %s already exists", submission.ID),
				ResourceType: "submission",
				ResourceID:   submission.ID,
			}
		}
		return fmt.Errorf("create submission: %w", err)
	}

	return nil
}

// GetByID retrieves a submission owned by studentID
func (r *PostgresSubmissionRepository) GetByID(ctx context.Context, id, studentID string) (*models.Submission, error) {
	query := fmt.Sprintf(`
		SELECT id, assignment_id, student_id, content, created_at
		FROM %s
		WHERE id = $1 AND student_id = $2
	`, r.tables.Submissions)

	executor := postgres.GetExecutor(ctx, r.pool)
	submission, err := scanSubmission(executor.QueryRow(ctx, query, id, studentID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: "submission not found"}
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}

	return submission, nil
}

// ListByStudent retrieves a student's submissions, newest first
func (r *PostgresSubmissionRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Submission, error) {
	query := fmt.Sprintf(`
		SELECT id, assignment_id, student_id, content, created_at
		FROM %s
		WHERE student_id = $1
		ORDER BY created_at DESC
	`, r.tables.Submissions)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		submissions = append(submissions, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}

	return submissions, nil
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var s models.Submission
	err := row.Scan(
		&s.ID,
		&s.AssignmentID,
		&s.StudentID,
		&s.Content,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
