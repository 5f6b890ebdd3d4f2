package coursework

import (
	"context"
	"fmt"

	"classroom/internal/domain"
	models "classroom/internal/domain/models/coursework"
	courseworkRepo "classroom/internal/domain/repositories/coursework"

	"classroom/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAssignmentRepository implements the AssignmentRepository interface
type PostgresAssignmentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(config *postgres.RepositoryConfig) courseworkRepo.AssignmentRepository {
	return &PostgresAssignmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts an assignment
func (r *PostgresAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, course_id, title, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.Assignments)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		assignment.ID,
		assignment.CourseID,
		assignment.Title,
		assignment.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("assignment %s already exists", assignment.ID),
				ResourceType: "assignment",
				ResourceID:   assignment.ID,
			}
		}
		return fmt.Errorf("create assignment: %w", err)
	}

	return nil
}

// GetByID retrieves an assignment by ID
func (r *PostgresAssignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT id, course_id, title, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Assignments)

	var assignment models.Assignment
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.CourseID,
		&assignment.Title,
		&assignment.CreatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: "assignment not found"}
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return &assignment, nil
}

// ListByCourse retrieves a course's assignments, newest first
func (r *PostgresAssignmentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT id, course_id, title, created_at
		FROM %s
		WHERE course_id = $1
		ORDER BY created_at DESC
	`, r.tables.Assignments)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Title, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}

	return assignments, nil
}
