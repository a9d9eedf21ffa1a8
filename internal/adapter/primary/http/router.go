package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/port/primary"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// NewRouter creates an HTTP mux with all application routes registered.
func NewRouter(
	intakeService primary.IntakeService,
	rescheduleService primary.RescheduleService,
	healthChecks []secondary.HealthChecker,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Webhook endpoints
	mux.Handle("/webhooks/invitee-created", NewInviteeCreatedHandler(intakeService, logger))
	mux.Handle("/webhooks/invitee-rescheduled", NewInviteeRescheduledHandler(rescheduleService, logger))

	// Health check endpoint
	mux.Handle("/health", NewHealthHandler(healthChecks))

	return withRequestID(withAccessLog(logger, mux))
}
