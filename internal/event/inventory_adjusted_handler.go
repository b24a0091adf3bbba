package event

import (
	"context"
	"log/slog"
)

const TopicInventoryAdjusted = "inventory.adjusted"

type AdjustmentReason string

const (
	AdjustmentReasonManual AdjustmentReason = "manual"
	AdjustmentReasonSale   AdjustmentReason = "sale"
)

type InventoryAdjustedEvent struct {
	ProductID int64            `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Reason    AdjustmentReason `json:"reason"`
	OrderID   *int64           `json:"order_id,omitempty"`
}

func (s *Service) handleInventoryAdjustedEvent(ctx context.Context, ev InventoryAdjustedEvent) error {
	attrs := []any{
		slog.Int64("product_id", ev.ProductID),
		slog.Int("quantity", ev.Quantity),
		slog.String("reason", string(ev.Reason)),
	}

	if ev.Quantity <= s.cfg.LowStockThreshold {
		s.logger.WarnContext(ctx, "product stock is low", append(attrs, slog.Int("threshold", s.cfg.LowStockThreshold))...)
		return nil
	}

	s.logger.DebugContext(ctx, "handling inventory adjusted event", attrs...)
	return nil
}
