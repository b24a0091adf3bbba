package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/auth"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/config"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/event"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/http"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/log"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/relay"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/mq"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/telemetry"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/cmdutil"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
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
		HTTP     config.HTTP
		Auth     config.Auth
		Relay    config.Relay
		Kafka    config.Kafka
		Event    config.Event
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	userRepository := repository.NewUserRepository(dbClient)
	categoryRepository := repository.NewCategoryRepository(dbClient)
	productRepository := repository.NewProductRepository(dbClient)
	inventoryRepository := repository.NewInventoryRepository(dbClient)
	orderRepository := repository.NewOrderRepository(dbClient)
	reportRepository := repository.NewReportRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	services := http.Services{
		User:      service.NewUserService(userRepository, auth.NewTokenIssuer(cfg.Auth)),
		Category:  service.NewCategoryService(dbClient, categoryRepository),
		Product:   service.NewProductService(dbClient, productRepository, categoryRepository, inventoryRepository, outboxMsgRepository),
		Inventory: service.NewInventoryService(dbClient, productRepository, inventoryRepository, outboxMsgRepository),
		Order:     service.NewOrderService(logger, dbClient, productRepository, inventoryRepository, orderRepository, outboxMsgRepository),
		Report:    service.NewReportService(reportRepository),
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := event.New(cfg.Event, logger, kafkaConsumer)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running event service: %w", err))
		}
		logger.InfoContext(ctx, "event service started")

		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, v, dbClient, services)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer, prometheus.DefaultRegisterer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		<-interruptChan

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}
