// main.go - Entry point for the bistro restaurant backend

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

	"bistro-backend/auth"
	"bistro-backend/config"
	"bistro-backend/database"
	"bistro-backend/handlers"
	"bistro-backend/mqtt"
	"bistro-backend/payments"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// STEP 1: Load configuration and set up logging
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// STEP 2: Open the store and connect collaborators
	db, err := database.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	stores := database.NewStores(db)
	if err := database.EnsureAdmin(ctx, stores.Users, cfg.AdminEmail); err != nil {
		return err
	}

	var kitchen handlers.Publisher = mqtt.Discard{}
	if cfg.MQTTBroker != "" {
		client, err := mqtt.Connect(cfg.MQTTBroker, "bistro-backend")
		if err != nil {
			return err
		}
		defer client.Close()
		kitchen = client
	} else {
		logger.Info("MQTT_BROKER not set, kitchen notifications disabled")
	}

	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_PAYMENT_SK not set, payment intents will fail")
	}

	h := &handlers.Handler{
		Stores:       stores,
		Signer:       auth.NewSigner(cfg.JWTSecret, cfg.TokenTTL, nil),
		Payments:     payments.NewStripe(cfg.StripeSecretKey),
		Kitchen:      kitchen,
		KitchenTopic: cfg.KitchenTopic,
		Currency:     cfg.Currency,
		Log:          logger,
	}

	// STEP 3: Serve until interrupted
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(h, cfg.CORSOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
