package event

import (
	"context"
	"log/slog"
)

const TopicProductDeleted = "product.deleted"

type ProductDeletedEvent struct {
	ProductID int64  `json:"product_id"`
	Sku       string `json:"sku"`
}

func (s *Service) handleProductDeletedEvent(ctx context.Context, ev ProductDeletedEvent) error {
	s.logger.InfoContext(ctx, "handling product deleted event",
		slog.Int64("product_id", ev.ProductID),
		slog.String("sku", ev.Sku),
	)
	return nil
}
