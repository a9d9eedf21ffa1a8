package http

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/port/primary"
	"github.com/ruudy-sib/demobridge/internal/requestid"
)

// InviteeRescheduledHandler handles POST /webhooks/invitee-rescheduled requests.
type InviteeRescheduledHandler struct {
	service primary.RescheduleService
	logger  *zap.Logger
}

// NewInviteeRescheduledHandler creates a handler for appointment changes.
func NewInviteeRescheduledHandler(service primary.RescheduleService, logger *zap.Logger) *InviteeRescheduledHandler {
	return &InviteeRescheduledHandler{
		service: service,
		logger:  logger.Named("invitee-rescheduled-handler"),
	}
}

// ServeHTTP processes the webhook.
func (h *InviteeRescheduledHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(requestid.Field(r.Context()))

	req, ok := decodeWebhook(w, r)
	if !ok {
		logger.Warn("undecodable webhook body")
		return
	}
	logger.Debug("webhook received", zap.String("event", req.Event))

	order, err := h.service.HandleInviteeRescheduled(r.Context(), req.toRescheduleRequest())
	if err != nil {
		respondError(w, logger, err)
		return
	}

	respondJSON(w, http.StatusOK, InviteeRescheduledResponse{
		Message: fmt.Sprintf("Order %d rescheduled", order.ID),
		OrderID: order.ID,
	})
}
