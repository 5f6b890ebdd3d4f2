package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"classroom/internal/config"
	"classroom/internal/handler"
	"classroom/internal/repository/postgres"
	postgresCoursework "classroom/internal/repository/postgres/coursework"
	"classroom/internal/resilience"
	"classroom/internal/server"
	serviceCoursework "classroom/internal/service/coursework"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load("student-service")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logFile, err := server.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	verifier, err := server.NewVerifier(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create credential verifier: %v", err)
	}
	defer verifier.Close()

	destinations, err := cfg.Destinations()
	if err != nil {
		log.Fatalf("Failed to load destinations: %v", err)
	}
	client, err := resilience.NewClient(destinations, logger)
	if err != nil {
		log.Fatalf("Failed to create service client: %v", err)
	}

	db, err := server.OpenDatabase(ctx, cfg, logger, postgres.TableSubmissions)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	submissionRepo := postgresCoursework.NewSubmissionRepository(db.RepoConfig)
	assignments := serviceCoursework.NewAssignmentChecker(client, config.AssignmentServiceDestination)
	submissionService := serviceCoursework.NewSubmissionService(submissionRepo, assignments, logger)

	srv := server.New(cfg, logger, verifier,
		handler.NewHealthHandler(cfg.ServiceName, db.Pool, logger),
		handler.NewSubmissionHandler(submissionService, logger),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		return
	}
	logger.Info("server stopped")
}
