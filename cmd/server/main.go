package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/repository"
	"storefront/internal/seed"
	"storefront/internal/session"
	"storefront/internal/web"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("connected to postgres")

	if err := repository.RunMigrations(pool); err != nil {
		return err
	}

	catalogRepo, err := repository.NewCatalog(pool)
	if err != nil {
		return err
	}

	orderRepo, err := repository.NewOrder(pool)
	if err != nil {
		return err
	}

	// Seed runs before the listener starts, so traffic never races it.
	if err := seed.Run(ctx, catalogRepo, cfg.Currency, logger); err != nil {
		return err
	}

	sessions, err := session.NewPostgresStore(pool, cfg.SessionTTL, logger)
	if err != nil {
		return err
	}
	defer sessions.Close()

	catalogService := catalog.NewService(catalogRepo)
	cartService := cart.NewService(sessions, catalogService)
	checkoutService := checkout.NewService(cartService, orderRepo, sessions, logger)

	handler := web.NewHandler(
		catalogService,
		cartService,
		checkoutService,
		sessions,
		cfg.SessionSecret,
		cfg.SessionTTL,
		logger,
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: web.Router(handler),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
