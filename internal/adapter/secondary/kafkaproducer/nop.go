package kafkaproducer

import (
	"context"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

var _ secondary.EventPublisher = NopPublisher{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, entity.OrderEvent) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }
