package primary

import (
	"context"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// SubscriptionService defines the primary port for registering the webhook
// with the booking provider.
type SubscriptionService interface {
	// Subscribe registers the webhook once. Without force, an existing lock
	// short-circuits with domain.ErrAlreadySubscribed.
	Subscribe(ctx context.Context, force bool) (*entity.Subscription, error)
}
