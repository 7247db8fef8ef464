package main

import (
	"context"
	"fmt"
	"os"

	"webgael/internal/config"
	"webgael/internal/db"
	"webgael/internal/logger"
	productrepo "webgael/internal/repository/product"
	"webgael/internal/seed"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, log)
	if err != nil {
		log.Fatal("connect db", logger.ErrorF(err))
	}
	defer pool.Close()

	n, err := seed.Apply(ctx, productrepo.NewPostgres(pool, log))
	if err != nil {
		log.Fatal("seed apply", logger.ErrorF(err))
	}

	log.Info("seed applied", logger.Int("products", n))
}
