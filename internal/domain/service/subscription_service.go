package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// SubscriptionSettings describes the webhook the bootstrap registers.
type SubscriptionSettings struct {
	CallbackURL string
	Events      []string
}

// SubscriptionService registers the booking webhook exactly once, guarded
// by the subscription lock in the key-value store.
type SubscriptionService struct {
	booking  secondary.BookingClient
	store    secondary.KeyValueStore
	settings SubscriptionSettings
	logger   *zap.Logger
}

// NewSubscriptionService creates a SubscriptionService with its dependencies injected.
func NewSubscriptionService(
	booking secondary.BookingClient,
	store secondary.KeyValueStore,
	settings SubscriptionSettings,
	logger *zap.Logger,
) *SubscriptionService {
	if len(settings.Events) == 0 {
		settings.Events = []string{domain.EventInviteeCreated}
	}
	return &SubscriptionService{
		booking:  booking,
		store:    store,
		settings: settings,
		logger:   logger.Named("subscription-service"),
	}
}

// Subscribe registers the webhook at organization scope and stores the
// subscription URI as the lock. No lock is written on failure, so a rerun
// is safe.
func (s *SubscriptionService) Subscribe(ctx context.Context, force bool) (*entity.Subscription, error) {
	exists, err := s.store.Exists(ctx, domain.SubscriptionLockKey)
	if err != nil {
		return nil, fmt.Errorf("checking subscription lock: %w", err)
	}
	if exists && !force {
		s.logger.Warn("already subscribed")
		return nil, domain.ErrAlreadySubscribed
	}
	if exists {
		s.logger.Warn("subscription lock present, re-subscribing")
	}

	user, err := s.booking.CurrentUser(ctx)
	if err != nil {
		s.logger.Error("fetching current user failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
	}
	if user == nil || user.URI == "" {
		s.logger.Error("booking provider returned no current user")
		return nil, fmt.Errorf("%w: empty current user", domain.ErrSubscriptionFailed)
	}

	sub, err := s.booking.CreateWebhookSubscription(ctx, entity.SubscriptionRequest{
		CallbackURL:  s.settings.CallbackURL,
		Events:       s.settings.Events,
		User:         user.URI,
		Organization: user.Organization,
		Scope:        domain.SubscriptionScopeOrganization,
	})
	if err != nil {
		s.logger.Error("creating webhook subscription failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrSubscriptionFailed, err)
	}
	if sub == nil || sub.URI == "" {
		s.logger.Error("booking provider returned no subscription uri")
		return nil, fmt.Errorf("%w: empty subscription uri", domain.ErrSubscriptionFailed)
	}

	if err := s.store.Put(ctx, domain.SubscriptionLockKey, []byte(sub.URI)); err != nil {
		s.logger.Error("subscribed but writing the lock failed",
			zap.String("webhook", sub.URI),
			zap.Error(err),
		)
		return sub, fmt.Errorf("writing subscription lock: %w", err)
	}

	s.logger.Info("successfully subscribed", zap.String("webhook", sub.URI))
	return sub, nil
}
