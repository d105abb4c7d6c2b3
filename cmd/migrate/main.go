package main

import (
	"context"
	"time"

	"github.com/punchamoorthee/bankledger/internal/config"
	"github.com/punchamoorthee/bankledger/internal/logger"
	"github.com/punchamoorthee/bankledger/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ledgerStore, err := store.NewStore(ctx, cfg.DBSource, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to connect to database")
	}
	defer ledgerStore.Close()

	if err := ledgerStore.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Schema migration failed")
	}
	log.Info().Msg("Schema is up to date")
}
