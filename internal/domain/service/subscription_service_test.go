package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

func testSubscriptionSettings() SubscriptionSettings {
	return SubscriptionSettings{CallbackURL: "https://hooks.example.com/webhooks/invitee-created"}
}

func TestSubscriptionService_Subscribe_success(t *testing.T) {
	booking := &mockBooking{}
	store := newMockStore()

	svc := NewSubscriptionService(booking, store, testSubscriptionSettings(), zap.NewNop())
	sub, err := svc.Subscribe(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sub.URI != "https://api.calendly.com/webhook_subscriptions/SUB" {
		t.Fatalf("unexpected subscription uri %q", sub.URI)
	}
	if got := string(store.data[domain.SubscriptionLockKey]); got != sub.URI {
		t.Fatalf("expected lock to hold %q, got %q", sub.URI, got)
	}

	if len(booking.subscribeCalls) != 1 {
		t.Fatalf("expected 1 subscribe call, got %d", len(booking.subscribeCalls))
	}
	req := booking.subscribeCalls[0]
	if req.CallbackURL != "https://hooks.example.com/webhooks/invitee-created" {
		t.Fatalf("unexpected callback url %q", req.CallbackURL)
	}
	if len(req.Events) != 1 || req.Events[0] != domain.EventInviteeCreated {
		t.Fatalf("unexpected events %v", req.Events)
	}
	if req.Scope != "organization" {
		t.Fatalf("unexpected scope %q", req.Scope)
	}
	if req.User != "https://api.calendly.com/users/AAA" || req.Organization != "https://api.calendly.com/organizations/ORG" {
		t.Fatalf("unexpected user/org: %q %q", req.User, req.Organization)
	}
}

func TestSubscriptionService_Subscribe_idempotent(t *testing.T) {
	booking := &mockBooking{}
	store := newMockStore()
	svc := NewSubscriptionService(booking, store, testSubscriptionSettings(), zap.NewNop())

	if _, err := svc.Subscribe(context.Background(), false); err != nil {
		t.Fatalf("first subscribe: unexpected error: %v", err)
	}
	_, err := svc.Subscribe(context.Background(), false)
	if !errors.Is(err, domain.ErrAlreadySubscribed) {
		t.Fatalf("second subscribe: expected %v, got %v", domain.ErrAlreadySubscribed, err)
	}

	if len(booking.subscribeCalls) != 1 {
		t.Fatalf("expected exactly 1 subscribe call, got %d", len(booking.subscribeCalls))
	}
	if booking.currentUserCalls != 1 {
		t.Fatalf("expected exactly 1 current user call, got %d", booking.currentUserCalls)
	}
}

func TestSubscriptionService_Subscribe_forceReplacesLock(t *testing.T) {
	booking := &mockBooking{}
	store := newMockStore()
	store.data[domain.SubscriptionLockKey] = []byte("https://api.calendly.com/webhook_subscriptions/OLD")

	svc := NewSubscriptionService(booking, store, testSubscriptionSettings(), zap.NewNop())
	sub, err := svc.Subscribe(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(store.data[domain.SubscriptionLockKey]); got != sub.URI {
		t.Fatalf("expected lock to be replaced with %q, got %q", sub.URI, got)
	}
}

func TestSubscriptionService_Subscribe_failuresWriteNoLock(t *testing.T) {
	tests := []struct {
		name        string
		currentUser func(context.Context) (*entity.BookingUser, error)
		subscribe   func(context.Context, entity.SubscriptionRequest) (*entity.Subscription, error)
		wantCalls   int
	}{
		{
			name: "current user fails",
			currentUser: func(context.Context) (*entity.BookingUser, error) {
				return nil, errors.New("401 unauthorized")
			},
			wantCalls: 0,
		},
		{
			name: "current user empty",
			currentUser: func(context.Context) (*entity.BookingUser, error) {
				return &entity.BookingUser{}, nil
			},
			wantCalls: 0,
		},
		{
			name: "subscription rejected",
			subscribe: func(context.Context, entity.SubscriptionRequest) (*entity.Subscription, error) {
				return nil, errors.New("409 already exists")
			},
			wantCalls: 1,
		},
		{
			name: "subscription without uri",
			subscribe: func(context.Context, entity.SubscriptionRequest) (*entity.Subscription, error) {
				return &entity.Subscription{}, nil
			},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &mockBooking{currentUserFunc: tt.currentUser, subscribeFunc: tt.subscribe}
			store := newMockStore()

			svc := NewSubscriptionService(booking, store, testSubscriptionSettings(), zap.NewNop())
			_, err := svc.Subscribe(context.Background(), false)

			if !errors.Is(err, domain.ErrSubscriptionFailed) {
				t.Fatalf("expected error wrapping %v, got %v", domain.ErrSubscriptionFailed, err)
			}
			if len(booking.subscribeCalls) != tt.wantCalls {
				t.Fatalf("expected %d subscribe calls, got %d", tt.wantCalls, len(booking.subscribeCalls))
			}
			if _, ok := store.data[domain.SubscriptionLockKey]; ok {
				t.Fatal("expected no lock to be written")
			}
		})
	}
}

func TestSubscriptionService_Subscribe_lockCheckFailure(t *testing.T) {
	booking := &mockBooking{}
	store := newMockStore()
	store.existErr = errors.New("redis down")

	svc := NewSubscriptionService(booking, store, testSubscriptionSettings(), zap.NewNop())
	if _, err := svc.Subscribe(context.Background(), false); err == nil {
		t.Fatal("expected error, got nil")
	}
	if booking.currentUserCalls != 0 {
		t.Fatalf("expected no provider calls, got %d", booking.currentUserCalls)
	}
}
