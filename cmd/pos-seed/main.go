package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/config"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/log"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/seed"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running seed application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Seed     config.Seed
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	seeder := seed.New(
		cfg.Seed,
		logger,
		dbClient,
		repository.NewUserRepository(dbClient),
		repository.NewCategoryRepository(dbClient),
		repository.NewProductRepository(dbClient),
		repository.NewInventoryRepository(dbClient),
	)

	logger.InfoContext(ctx, "seeding database")

	if err := seeder.Run(ctx); err != nil {
		return fmt.Errorf("error seeding database: %w", err)
	}

	logger.InfoContext(ctx, "seed data applied")

	return nil
}
