package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/config"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/db"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/events"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/ledger"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/order"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/payment"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/transport"
)

func connect(ctx context.Context, cfg *config.Config) (*db.Postgres, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pg, err := db.New(connectCtx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pg, nil
}

func migrateUpCommand(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pg, err := connect(c.Context, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	return pg.MigrateUp()
}

func migrateDownCommand(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pg, err := connect(c.Context, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	return pg.MigrateDown(c.Int("steps"))
}

// newLedger uses Redis when configured and falls back to a no-op ledger.
func newLedger(ctx context.Context, cfg config.RedisConfig) (ledger.Ledger, func()) {
	if cfg.URL == "" {
		log.Info().Msg("REDIS_URL not set, webhook event ledger disabled")
		return ledger.NewNoopLedger(), func() {}
	}

	client, err := ledger.NewRedisClient(ctx, cfg.URL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, webhook event ledger disabled")
		return ledger.NewNoopLedger(), func() {}
	}
	return ledger.NewRedisLedger(client, cfg.LedgerTTL), func() { _ = client.Close() }
}

// newPublisher uses AMQP when configured and falls back to a no-op publisher.
func newPublisher(cfg config.AMQPConfig) events.Publisher {
	if cfg.URL == "" {
		log.Info().Msg("AMQP_URL not set, domain events disabled")
		return events.NewNoopPublisher()
	}

	publisher, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		log.Warn().Err(err).Msg("Message broker unavailable, domain events disabled")
		return events.NewNoopPublisher()
	}
	return publisher
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info().Msg("Store admin starting...")

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pg.Close()

	if c.Bool("migrate") {
		if err := pg.MigrateUp(); err != nil {
			return err
		}
	}

	eventLedger, closeLedger := newLedger(ctx, cfg.Redis)
	defer closeLedger()

	publisher := newPublisher(cfg.AMQP)
	defer publisher.Close()

	gateway := payment.NewStripeGateway(cfg.Payment.StripeAPIKey, cfg.Payment.StripeWebhookSecret)
	orderRepo := order.NewRepository(pg.Pool)

	router := transport.NewRouter(transport.Services{
		Catalog: catalog.NewService(catalog.NewPostgresRepositories(pg.Pool)),
		Checkout: order.NewCheckoutService(orderRepo, gateway, publisher, order.CheckoutConfig{
			FrontendStoreURL: cfg.Payment.FrontendStoreURL,
			Currency:         cfg.Payment.Currency,
		}),
		Webhook: order.NewWebhookService(orderRepo, gateway, eventLedger, publisher),
		Revenue: order.NewRevenueService(orderRepo),
		Auth:    auth.NewAuthenticator(cfg.Auth.JWTSecret),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}
