package primary

import (
	"context"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// IntakeService defines the primary port for "invitee created" webhooks.
type IntakeService interface {
	// HandleInviteeCreated resolves the customer, creates the order and reports
	// the analytics event. The result is non-nil whenever an order was created,
	// even if a later step failed.
	HandleInviteeCreated(ctx context.Context, req *entity.BookingRequest) (*entity.BookingResult, error)
}

// RescheduleService defines the primary port for appointment changes.
type RescheduleService interface {
	// HandleInviteeRescheduled moves the appointment of the order created
	// from the request's tracking URL and returns the updated order.
	HandleInviteeRescheduled(ctx context.Context, req *entity.RescheduleRequest) (*entity.Order, error)
}
