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
	"classroom/internal/server"
	serviceCoursework "classroom/internal/service/coursework"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load("admin-service")
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

	db, err := server.OpenDatabase(ctx, cfg, logger, postgres.TableCourses)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	courseRepo := postgresCoursework.NewCourseRepository(db.RepoConfig)
	courseService := serviceCoursework.NewCourseService(courseRepo, logger)

	srv := server.New(cfg, logger, verifier,
		handler.NewHealthHandler(cfg.ServiceName, db.Pool, logger),
		handler.NewCourseHandler(courseService, logger),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		return
	}
	logger.Info("server stopped")
}
