package main

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

	"github.com/cmlabs-hris/hris-shift-rotation/internal/app"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/config"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hris-shift-rotation/internal/handler/http"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-shift-rotation/internal/pkg/tenant"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open storage", "storage", cfg.App.StorageType, "error", err)
		os.Exit(1)
	}
	defer closeRepos()

	services := app.NewServices(repos, cfg.Sync)

	if cfg.Seed.CompanyID != "" {
		if err := seed(ctx, cfg, services); err != nil {
			slog.Error("Failed to seed fixtures", "error", err)
			os.Exit(1)
		}
	}

	scheduler := cron.NewScheduler(time.UTC)
	if cfg.Rollover.Enabled {
		jobs := cron.NewRotationJobs(repos.Groups, services.Rotation)
		if err := jobs.RegisterJobs(scheduler, cfg.Rollover.Cron); err != nil {
			slog.Error("Failed to register cron jobs", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	shiftHandler := appHTTP.NewShiftHandler(services.Shift, services.Rotation)
	rotationHandler := appHTTP.NewRotationHandler(services.Rotation)
	attendanceHandler := appHTTP.NewAttendanceHandler(services.Attendance)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		shiftHandler,
		rotationHandler,
		attendanceHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.App.StorageType, "env", cfg.App.Env)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}
}

func seed(ctx context.Context, cfg *config.Config, services app.Services) error {
	f, err := fixtures.Defaults()
	if cfg.Seed.File != "" {
		f, err = fixtures.Load(cfg.Seed.File)
	}
	if err != nil {
		return err
	}

	_, err = fixtures.Seed(tenant.WithCompanyID(ctx, cfg.Seed.CompanyID), services.Shift, f)
	return err
}
