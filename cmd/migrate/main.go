package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"webgael/internal/config"
	"webgael/internal/db"
	"webgael/internal/logger"
	"webgael/internal/migrate"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying")
	flag.Parse()

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

	if *down > 0 {
		if err := migrate.Rollback(ctx, pool, *down); err != nil {
			log.Fatal("roll back migrations", logger.ErrorF(err))
		}
		log.Info("migrations rolled back", logger.Int("steps", *down))
		return
	}

	version, err := migrate.Apply(ctx, pool)
	if err != nil {
		log.Fatal("apply migrations", logger.ErrorF(err))
	}
	log.Info("migrations applied", logger.Uint("version", version))
}
