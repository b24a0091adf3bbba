package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/config"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/mq"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/outbox"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/ptr"
)

// Service moves committed outbox messages to the broker. Delivery is at least once: a message is
// marked processed only after the batch it belongs to has been produced.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.DB
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer
	metrics       *metrics

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
	reg prometheus.Registerer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		metrics:       newMetrics(reg),
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			if _, err := s.RelayBatch(ctx); err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
			}
		}
	}
}

// RelayBatch produces one batch of unprocessed outbox messages and returns how many it marked
// processed. The batch stays locked for the duration so concurrent relays never pick the same rows.
// Messages sharing a partition key are produced one after another in outbox order; once one of them
// fails, the remaining ones of that key are left for the next batch.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	var relayed int
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		outboxMsgs, err := s.outboxMsgRepo.
			WithDB(db).
			ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
				//nolint:gosec
				BatchSize: int32(s.cfg.BatchSize),
			})
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		if len(outboxMsgs) == 0 {
			return nil
		}

		s.logger.DebugContext(ctx, "relaying outbox msgs", slog.Int("count", len(outboxMsgs)))

		results := make([]*repository.BulkUpdateOutboxMsgsItem, len(outboxMsgs))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(s.cfg.Concurrency, 1))

		for _, group := range groupByPartitionKey(outboxMsgs) {
			g.Go(func() error {
				for _, i := range group {
					msg := outboxMsgs[i]
					results[i] = &repository.BulkUpdateOutboxMsgsItem{ID: msg.ID}
					if err := s.produce(gctx, msg); err != nil {
						s.logger.ErrorContext(ctx, "error producing message",
							slog.String("outbox_msg_id", msg.ID.String()),
							slog.String("topic", msg.Topic),
							slog.Any("error", err),
						)
						results[i].Error = ptr.New(err.Error())
						s.metrics.relayed.WithLabelValues(msg.Topic, "error").Inc()
						// The rest of the key stays unprocessed and is retried by the next batch.
						return nil
					}
					s.metrics.relayed.WithLabelValues(msg.Topic, "ok").Inc()
				}
				return nil
			})
		}

		//nolint:errcheck
		g.Wait()

		items := make([]repository.BulkUpdateOutboxMsgsItem, 0, len(results))
		for _, item := range results {
			if item != nil {
				items = append(items, *item)
			}
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
				Items: items,
			}); err != nil {
			return fmt.Errorf("bulk update outbox msgs: %w", err)
		}

		relayed = len(items)
		s.metrics.batches.Inc()
		return nil
	}); err != nil {
		return 0, fmt.Errorf("db with tx: %w", err)
	}

	return relayed, nil
}

func (s *Service) produce(ctx context.Context, msg repository.ListUnprocessedOutboxMsgsResult) error {
	// Produce spans continue the trace of the request that wrote the message.
	ctx = outbox.ExtractContextFromHeaders(ctx, msg.Headers)

	produceMsg := mq.Message{
		Topic:   msg.Topic,
		Headers: msg.Headers,
		Payload: msg.Payload,
	}
	if msg.PartitionKey != nil {
		produceMsg.Key = *msg.PartitionKey
	}

	if err := s.mqProducer.Produce(ctx, produceMsg); err != nil {
		return fmt.Errorf("produce message: %w", err)
	}

	return nil
}

// groupByPartitionKey splits a batch into index groups that may be produced concurrently. Messages
// sharing a partition key land in one group in batch order; keyless messages are grouped alone.
func groupByPartitionKey(msgs []repository.ListUnprocessedOutboxMsgsResult) [][]int {
	var groups [][]int
	byKey := make(map[string]int)
	for i, msg := range msgs {
		if msg.PartitionKey == nil {
			groups = append(groups, []int{i})
			continue
		}
		if g, ok := byKey[*msg.PartitionKey]; ok {
			groups[g] = append(groups[g], i)
			continue
		}
		byKey[*msg.PartitionKey] = len(groups)
		groups = append(groups, []int{i})
	}
	return groups
}
