package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fieldplan/fieldplan/internal/allocation"
	"github.com/fieldplan/fieldplan/internal/api"
	"github.com/fieldplan/fieldplan/internal/auth"
	"github.com/fieldplan/fieldplan/internal/config"
	"github.com/fieldplan/fieldplan/internal/database"
	"github.com/fieldplan/fieldplan/internal/helicopter"
	"github.com/fieldplan/fieldplan/internal/location"
	"github.com/fieldplan/fieldplan/internal/metrics"
	"github.com/fieldplan/fieldplan/internal/plan"
	"github.com/fieldplan/fieldplan/internal/portfolio"
	"github.com/fieldplan/fieldplan/internal/project"
	"github.com/fieldplan/fieldplan/internal/runner"
	"github.com/fieldplan/fieldplan/internal/team"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := auth.NewPostgresRepository(db.Pool())
	authService := auth.NewService(userRepo, cfg.BcryptCost)
	if _, err := authService.BootstrapSuperuser(ctx); err != nil {
		slog.Error("failed to bootstrap superuser", "error", err)
		os.Exit(1)
	}

	teamRepo := team.NewPostgresRepository(db.Pool())
	locationRepo := location.NewPostgresRepository(db.Pool())
	helicopterRepo := helicopter.NewPostgresRepository(db.Pool())
	portfolioRepo := portfolio.NewPostgresRepository(db.Pool())
	projectRepo := project.NewPostgresRepository(db.Pool())
	planRepo := plan.NewPostgresRepository(db.Pool())
	allocationRepo := allocation.NewPostgresRepository(db.Pool())

	m := metrics.New()

	router := api.NewRouter(api.RouterDeps{
		DBPinger:       db,
		Version:        cfg.Version,
		AuthService:    authService,
		UserRepo:       userRepo,
		TeamRepo:       teamRepo,
		LocationRepo:   locationRepo,
		HelicopterRepo: helicopterRepo,
		PortfolioRepo:  portfolioRepo,
		ProjectRepo:    projectRepo,
		PlanRepo:       planRepo,
		AllocationRepo: allocationRepo,
		Metrics:        m,
	})

	planRunner := runner.New(planRepo, projectRepo, time.Duration(cfg.RunnerInterval)*time.Second, m.PlansExecuted, m.PlansFailed)
	go planRunner.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting fieldplan server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
