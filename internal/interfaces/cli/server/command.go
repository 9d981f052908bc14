// Package server contains the CLI command that runs the API server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"iothub/internal/infrastructure/auth"
	"iothub/internal/infrastructure/config"
	"iothub/internal/infrastructure/database"
	"iothub/internal/infrastructure/mailqueue"
	httpiface "iothub/internal/interfaces/http"
	"iothub/internal/shared/logger"
)

// NewCommand creates the serve command.
func NewCommand() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(env)
		},
	}
	cmd.Flags().StringVarP(&env, "env", "e", "default", "environment (default, debug, release)")
	return cmd
}

func run(env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	keyPEM, err := os.ReadFile(cfg.Auth.JWT.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read signing key: %w", err)
	}
	signer, err := auth.NewSigner(keyPEM, auth.SignerConfig{
		SessionExpDays:      cfg.Auth.JWT.SessionExpDays,
		DeviceAccessExpDays: cfg.Auth.JWT.DeviceAccessExpDays,
		RefreshExpDays:      cfg.Auth.JWT.RefreshExpDays,
	})
	if err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	producer := mailqueue.NewProducer(redisClient, cfg.MailQueue.Key)

	router := httpiface.NewRouter(httpiface.RouterDeps{
		DB:     database.Get(),
		Signer: signer,
		Mail:   producer,
		Auth:   &cfg.Auth,
		Mode:   cfg.Server.Mode,
		Logger: log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Infow("server stopped")
	return nil
}
