package event

import (
	"context"
	"log/slog"
)

const TopicOrderCreated = "order.created"

type OrderCreatedEvent struct {
	OrderID     int64              `json:"order_id"`
	CreatedBy   int64              `json:"created_by"`
	TotalAmount string             `json:"total_amount"`
	Lines       []OrderCreatedLine `json:"lines"`
}

type OrderCreatedLine struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

func (s *Service) handleOrderCreatedEvent(ctx context.Context, ev OrderCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling order created event",
		slog.Int64("order_id", ev.OrderID),
		slog.Int64("created_by", ev.CreatedBy),
		slog.String("total_amount", ev.TotalAmount),
		slog.Int("lines", len(ev.Lines)),
	)
	return nil
}
