package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"

	"marketplace/internal/app"
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/repositories"
	"marketplace/internal/services"
	"marketplace/pkg/rabbitmq"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "marketplace",
		Short:        "Marketplace REST API",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateAdminCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the order event consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var email, username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, or promote an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			authService := services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.JWTSecret, cfg.JWTTTL)
			admin, err := authService.CreateAdmin(cmd.Context(), email, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s (%s) ready\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&username, "username", "admin", "username for a new account")
	cmd.Flags().StringVar(&password, "password", "", "password for a new account")
	cmd.MarkFlagRequired("email")
	return cmd
}

func serve() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	deps := app.Dependencies{Config: cfg, DB: db}

	// --- Redis (shared rate limits) ---
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis not reachable yet: %v", err)
		}
		cancel()
		deps.Redis = rdb
	}

	// --- Initialize RabbitMQ Client ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer mqClient.Close() // Ensure the connection is closed on exit
			deps.Publisher = mqClient
		}
	}

	server := app.New(deps)

	// --- Start RabbitMQ Consumer ---
	if mqClient != nil {
		consumerCtx, stopConsumer := context.WithCancel(context.Background())
		defer stopConsumer()
		err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			return server.Deliveries.HandleOrderEvent(consumerCtx, msg.Body)
		})
		if err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- server.App.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Println("Shutting down server...")
	if err := server.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}
