package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"classroom/internal/domain/repositories"
)

// Pool sizing for every service.
const (
	MaxConns = 25
	MinConns = 2
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds prefixed table names. Each service owns one schema, so
// the prefix is normally "admin.", "teacher." or "student."; a TABLE_PREFIX
// such as "test_" keeps everything in the default schema instead.
type TableNames struct {
	Prefix      string
	Courses     string
	Assignments string
	Submissions string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:      prefix,
		Courses:     fmt.Sprintf("%scourses", prefix),
		Assignments: fmt.Sprintf("%sassignments", prefix),
		Submissions: fmt.Sprintf("%ssubmissions", prefix),
	}
}

// Schema returns the schema named by the prefix, or "" when the prefix is
// not schema-qualified.
func (t *TableNames) Schema() string {
	if len(t.Prefix) > 1 && t.Prefix[len(t.Prefix)-1] == '.' {
		return t.Prefix[:len(t.Prefix)-1]
	}
	return ""
}

// CreateConnectionPool creates a pgx pool and verifies it with a ping.
//
// Port 6543 is treated as a PgBouncer transaction pooler, which cannot hold
// prepared statements: unless the connection string already picks a
// default_query_exec_mode, the pool switches to QueryExecModeCacheDescribe.
// Table names are interpolated with fmt.Sprintf before queries are sent, so
// each prefix gets its own cached statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = MaxConns
	config.MinConns = MinConns

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
// This enables repositories to automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	// Check if there's a transaction in the context
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	// No transaction, use the pool
	return pool
}
