package secondary

import (
	"context"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// EventPublisher defines the secondary port for announcing order changes
// to downstream consumers (e.g., Kafka).
type EventPublisher interface {
	// Publish sends an order event.
	Publish(ctx context.Context, event entity.OrderEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
