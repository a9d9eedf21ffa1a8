package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// publishOrderEvent announces an order change. The CRM write has already
// happened, so a publish failure is only logged.
func publishOrderEvent(ctx context.Context, publisher secondary.EventPublisher, event entity.OrderEvent, logger *zap.Logger) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("publishing order event failed",
			zap.String("kind", string(event.Kind)),
			zap.Int("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
