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

	"github.com/cmlabs-hris/hris-dar-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-dar-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/hris-dar-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/hris-dar-go/internal/service/auth"
	serviceDAR "github.com/cmlabs-hris/hris-dar-go/internal/service/dar"
	serviceHoliday "github.com/cmlabs-hris/hris-dar-go/internal/service/holiday"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).
		With(slog.String("app", "hris-dar"), slog.String("env", cfg.App.Env))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	} else {
		logger.Info("google sign-in disabled")
	}

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, tokenRepo)
	darService := serviceDAR.NewDARService(db, reportRepo, taskRepo, holidayRepo)
	holidayService := serviceHoliday.NewHolidayService(holidayRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        "hris-dar",
			Version:        version,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.App.FrontendURL),
		appHTTP.NewDARHandler(darService),
		appHTTP.NewHolidayHandler(holidayService),
	)

	scheduler := cron.NewScheduler(logger)
	cron.NewTokenJobs(tokenRepo, JWTService, logger).RegisterJobs(scheduler, cfg.Cron.TokenCleanupInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", server.Addr, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
