package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/punchamoorthee/bankledger/internal/api"
	"github.com/punchamoorthee/bankledger/internal/config"
	"github.com/punchamoorthee/bankledger/internal/logger"
	"github.com/punchamoorthee/bankledger/internal/rates"
	"github.com/punchamoorthee/bankledger/internal/service"
	"github.com/punchamoorthee/bankledger/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.New(cfg.LogLevel).With().Str("env", cfg.Env).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledgerStore, err := store.NewStore(ctx, cfg.DBSource, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to connect to database")
	}
	defer ledgerStore.Close()

	if err := ledgerStore.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Unable to apply schema")
	}

	// Initialize Layers
	resolver := rates.NewResolver(rates.Config{
		Endpoint:     cfg.RatesEndpoint,
		APIKey:       cfg.RatesAPIKey,
		BaseParam:    cfg.RatesBaseParam,
		TargetParam:  cfg.RatesTargetParam,
		Timeout:      cfg.RatesTimeout,
		FallbackRate: decimal.NewFromFloat(cfg.FallbackRate),
	}, log)
	transfers := service.NewTransferService(ledgerStore, resolver, log)
	handler := api.NewHandler(ledgerStore, transfers, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(handler, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
