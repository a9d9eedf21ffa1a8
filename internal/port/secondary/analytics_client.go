package secondary

import (
	"context"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// AnalyticsClient defines the secondary port for event reporting.
type AnalyticsClient interface {
	// LogEvent sends one event and returns the response code the service reported.
	LogEvent(ctx context.Context, event entity.AnalyticsEvent) (int, error)
}
