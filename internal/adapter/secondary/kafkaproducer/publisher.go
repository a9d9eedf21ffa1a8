package kafkaproducer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// messageWriter is the subset of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// orderEventDTO is the JSON value written for each order event.
type orderEventDTO struct {
	Kind       string    `json:"kind"`
	OrderID    int       `json:"order_id"`
	CustomerID int       `json:"customer_id,omitempty"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Timezone   string    `json:"timezone"`
	EmittedAt  time.Time `json:"emitted_at"`
}

// Publisher implements secondary.EventPublisher on a single Kafka writer.
// Events are keyed by order id so one order's events stay on one partition.
type Publisher struct {
	writer messageWriter
	topic  string
	now    func() time.Time
	logger *zap.Logger
}

// NewPublisher creates a Kafka publisher from the application configuration.
func NewPublisher(cfg *config.Config, logger *zap.Logger) secondary.EventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("kafka publisher initialized",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
	)

	return newPublisher(writer, cfg.KafkaTopic, logger)
}

func newPublisher(writer messageWriter, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		now:    time.Now,
		logger: logger.Named("kafka-publisher"),
	}
}

// Publish writes one order event.
func (p *Publisher) Publish(ctx context.Context, event entity.OrderEvent) error {
	value, err := json.Marshal(orderEventDTO{
		Kind:       string(event.Kind),
		OrderID:    event.OrderID,
		CustomerID: event.CustomerID,
		Date:       event.Date,
		Time:       event.Time,
		Timezone:   event.Timezone,
		EmittedAt:  p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(event.OrderID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing order event to kafka topic %q: %w", p.topic, err)
	}

	p.logger.Debug("order event published",
		zap.String("kind", string(event.Kind)),
		zap.Int("order_id", event.OrderID),
		zap.Int("value_size", len(value)),
	)
	return nil
}

// Close shuts down the Kafka writer and releases its resources.
func (p *Publisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
