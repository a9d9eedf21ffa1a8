package kafkaproducer

import (
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// HealthCheck implements secondary.HealthChecker by dialing the brokers
// until one answers.
type HealthCheck struct {
	brokers []string
	dialer  *kafka.Dialer
}

// NewHealthCheck creates a Kafka health checker.
func NewHealthCheck(brokers []string) secondary.HealthChecker {
	return &HealthCheck{brokers: brokers, dialer: &kafka.Dialer{}}
}

// Name returns the name of this health check.
func (h *HealthCheck) Name() string {
	return "kafka"
}

// Check succeeds as soon as one broker accepts a connection.
func (h *HealthCheck) Check(ctx context.Context) error {
	if len(h.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	var errs []error
	for _, broker := range h.brokers {
		conn, err := h.dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", broker, err))
			continue
		}
		conn.Close()
		return nil
	}
	return errors.Join(errs...)
}
