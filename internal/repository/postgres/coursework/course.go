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

// PostgresCourseRepository implements the CourseRepository interface
type PostgresCourseRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(config *postgres.RepositoryConfig) courseworkRepo.CourseRepository {
	return &PostgresCourseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, created_at)
		VALUES ($1, $2, $3)
	`, r.tables.Courses)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, course.ID, course.Name, course.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("course %s already exists", course.ID),
				ResourceType: "course",
				ResourceID:   course.ID,
			}
		}
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Courses)

	var course models.Course
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.CreatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: "course not found"}
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

// List retrieves all courses, newest first
func (r *PostgresCourseRepository) List(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		ORDER BY created_at DESC
	`, r.tables.Courses)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}
