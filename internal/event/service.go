package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/config"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/mq"
)

// Service is the event service.
type Service struct {
	cfg        config.Event
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	cfg config.Event,
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		cfg:        cfg,
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := registerHandler(s.mqConsumer, TopicOrderCreated, s.handleOrderCreatedEvent); err != nil {
		return nil, fmt.Errorf("register order created event handler: %w", err)
	}

	if err := registerHandler(s.mqConsumer, TopicInventoryAdjusted, s.handleInventoryAdjustedEvent); err != nil {
		return nil, fmt.Errorf("register inventory adjusted event handler: %w", err)
	}

	if err := registerHandler(s.mqConsumer, TopicProductDeleted, s.handleProductDeletedEvent); err != nil {
		return nil, fmt.Errorf("register product deleted event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

// registerHandler decodes the JSON payload of topic into T before calling handle.
func registerHandler[T any](consumer mq.Consumer, topic string, handle func(context.Context, T) error) error {
	return consumer.RegisterHandler(topic, func(ctx context.Context, msg mq.Message) error {
		var ev T
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", msg.Topic, err)
		}

		if err := handle(ctx, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", msg.Topic, err)
		}

		return nil
	})
}
