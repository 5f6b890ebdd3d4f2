package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"classroom/internal/domain/repositories"
)

// Table identifies a table owned by one of the services.
type Table int

const (
	TableCourses Table = iota
	TableAssignments
	TableSubmissions
)

// ddl returns the CREATE statement for table. Cross-service references
// (course_id, assignment_id) are plain UUID columns: the row they point to
// lives in another service's database.
func (t *TableNames) ddl(table Table) (string, error) {
	switch table {
	case TableCourses:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         UUID PRIMARY KEY,
				name       VARCHAR(255) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, t.Courses), nil
	case TableAssignments:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         UUID PRIMARY KEY,
				course_id  UUID NOT NULL,
				title      VARCHAR(255) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, t.Assignments), nil
	case TableSubmissions:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id            UUID PRIMARY KEY,
				assignment_id UUID NOT NULL,
				student_id    TEXT NOT NULL,
				content       TEXT,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, t.Submissions), nil
	default:
		return "", fmt.Errorf("unknown table %d", table)
	}
}

// indexes returns supporting indexes for table's list queries.
func (t *TableNames) indexes(table Table) []string {
	switch table {
	case TableAssignments:
		return []string{fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS assignments_course_id_idx ON %s (course_id, created_at DESC)`, t.Assignments)}
	case TableSubmissions:
		return []string{fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS submissions_student_id_idx ON %s (student_id, created_at DESC)`, t.Submissions)}
	default:
		return nil
	}
}

// Statements returns the DDL that EnsureSchema runs for the given tables.
func (t *TableNames) Statements(tables ...Table) ([]string, error) {
	var stmts []string
	if schema := t.Schema(); schema != "" {
		stmts = append(stmts, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema))
	}
	for _, table := range tables {
		stmt, err := t.ddl(table)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		stmts = append(stmts, t.indexes(table)...)
	}
	return stmts, nil
}

// EnsureSchema creates this service's schema and tables in one transaction.
// Every statement is idempotent, so it runs on each start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, txm repositories.TransactionManager, tables *TableNames, owned ...Table) error {
	stmts, err := tables.Statements(owned...)
	if err != nil {
		return err
	}

	return txm.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, pool)
		for _, stmt := range stmts {
			if _, err := executor.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		return nil
	})
}
