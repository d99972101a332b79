package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "usercontacts/docs" // swagger docs

	"usercontacts/internal/app"
	"usercontacts/internal/config"
	"usercontacts/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// @title User Contacts API
// @version 1.0
// @description Users, contacts, JWT authentication and an upload gallery.
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Users and contacts REST API with JWT auth and an upload gallery.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.ServerPort, "port", cfg.ServerPort, "HTTP listen port")
	flags.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver (sqlite or mysql)")
	flags.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "sqlite file path or mysql DSN")
	flags.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "directory for uploaded files")

	return cmd
}

func run(cfg *config.Config) error {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, OutputPath: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("boot failed", zap.Error(err))
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
		_ = a.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}
