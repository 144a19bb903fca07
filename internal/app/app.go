package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"violation-tracker/internal/auth"
	"violation-tracker/internal/config"
	"violation-tracker/internal/database"
	"violation-tracker/internal/handler"
	"violation-tracker/internal/middleware"
	"violation-tracker/internal/repository"
	"violation-tracker/internal/router"
	"violation-tracker/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	violationRepo := repository.NewViolationRepository(pool)
	observationRepo := repository.NewObservationRepository(pool)
	masterRepo := repository.NewMasterDataRepository(pool)
	configRepo := repository.NewConfigRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	slog.Info("database ready")

	passwords := auth.NewPasswordHasher(cfg.BcryptCost)
	authService := service.NewAuthService(cfg.JWT, userRepo, passwords)
	userService := service.NewUserService(userRepo, passwords)

	if err := userService.EnsureAdmin(ctx, service.AdminAccount{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	violationService := service.NewViolationService(violationRepo, masterRepo, configRepo)
	observationService := service.NewObservationService(observationRepo, masterRepo, configRepo)
	masterService := service.NewMasterDataService(masterRepo, configRepo)
	reportService := service.NewReportService(reportRepo)
	dashboardService := service.NewDashboardService(userRepo, violationRepo, observationRepo, masterRepo)

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Health:      handler.NewHealthHandler(db),
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Violation:   handler.NewViolationHandler(violationService),
		Observation: handler.NewObservationHandler(observationService),
		Master:      handler.NewMasterHandler(masterService),
		Report:      handler.NewReportHandler(reportService, dashboardService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		a.db.Close()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Drain in-flight requests before the pool goes away.
	shutdownErr := a.server.Shutdown(ctx)
	a.db.Close()
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}
