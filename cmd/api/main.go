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

	"github.com/cmlabs-hris/audit-pilar-go/internal/config"
	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	appHTTP "github.com/cmlabs-hris/audit-pilar-go/internal/handler/http"
	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/database"
	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/logger"
	"github.com/cmlabs-hris/audit-pilar-go/internal/repository/postgresql"
	auditService "github.com/cmlabs-hris/audit-pilar-go/internal/service/audit"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, logger.Options{
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	slog.SetDefault(log)

	engineCfg := audit.DefaultEngineConfig()
	if cfg.Engine.Path != "" {
		engineCfg, err = audit.LoadEngineConfig(cfg.Engine.Path)
		if err != nil {
			return fmt.Errorf("load engine config: %w", err)
		}
	}
	evaluator, err := auditService.NewEvaluator(engineCfg)
	if err != nil {
		return fmt.Errorf("init audit engine: %w", err)
	}
	slog.Info("Audit engine ready", "config_version", engineCfg.Version, "pillars", len(engineCfg.Pillars))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectWithRetry(ctx, cfg.DatabaseURL(), cfg.Database.ConnectTimeout)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	auditRepo := postgresql.NewAuditRepository(db)
	auditSvc := auditService.NewAuditService(auditRepo, evaluator)
	auditHandler := appHTTP.NewAuditHandler(auditSvc)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         log,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	}, auditHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
