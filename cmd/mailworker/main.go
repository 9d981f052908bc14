// The mailworker consumes the outbound mail queue and delivers over SMTP.
// It runs as a separate process so SMTP latency and outages never touch the
// API path.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"iothub/internal/infrastructure/config"
	"iothub/internal/infrastructure/email"
	"iothub/internal/infrastructure/mailqueue"
	"iothub/internal/shared/logger"
)

func main() {
	var env string

	root := &cobra.Command{
		Use:   "mailworker",
		Short: "Deliver queued outbound mail",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(env)
		},
	}
	root.Flags().StringVarP(&env, "env", "e", "default", "environment")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	log := logger.NewLogger().Named("mailworker")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	sender := email.NewSMTPSender(&cfg.Email)
	consumer := mailqueue.NewConsumer(redisClient, cfg.MailQueue.Key, sender, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return consumer.Run(ctx)
}
