package secondary

import (
	"context"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// BookingClient defines the secondary port for the calendar-booking provider.
type BookingClient interface {
	// CurrentUser returns the account the configured token belongs to.
	CurrentUser(ctx context.Context) (*entity.BookingUser, error)

	// CreateWebhookSubscription registers a webhook and returns the subscription.
	CreateWebhookSubscription(ctx context.Context, req entity.SubscriptionRequest) (*entity.Subscription, error)
}
