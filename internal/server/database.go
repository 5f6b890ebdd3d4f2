package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"classroom/internal/config"
	"classroom/internal/repository/postgres"
)

// Database is a service's connection pool plus the repository wiring built
// on it.
type Database struct {
	Pool       *pgxpool.Pool
	RepoConfig *postgres.RepositoryConfig
}

// OpenDatabase connects to the service's database and, when AUTO_MIGRATE is
// on, creates the tables the service owns.
func OpenDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger, owned ...postgres.Table) (*Database, error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	logger.Info("database connected",
		"max_conns", postgres.MaxConns,
		"min_conns", postgres.MinConns,
		"table_prefix", cfg.TablePrefix,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if cfg.AutoMigrate {
		txm := postgres.NewTransactionManager(pool, logger)
		if err := postgres.EnsureSchema(ctx, pool, txm, tables, owned...); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("schema ensured", "schema", tables.Schema())
	}

	return &Database{
		Pool: pool,
		RepoConfig: &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		},
	}, nil
}

// Close releases the pool.
func (d *Database) Close() {
	d.Pool.Close()
}
