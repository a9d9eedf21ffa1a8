package http

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/port/primary"
	"github.com/ruudy-sib/demobridge/internal/requestid"
)

// InviteeCreatedHandler handles POST /webhooks/invitee-created requests.
type InviteeCreatedHandler struct {
	service primary.IntakeService
	logger  *zap.Logger
}

// NewInviteeCreatedHandler creates a handler for new bookings.
func NewInviteeCreatedHandler(service primary.IntakeService, logger *zap.Logger) *InviteeCreatedHandler {
	return &InviteeCreatedHandler{
		service: service,
		logger:  logger.Named("invitee-created-handler"),
	}
}

// ServeHTTP processes the webhook.
func (h *InviteeCreatedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(requestid.Field(r.Context()))

	req, ok := decodeWebhook(w, r)
	if !ok {
		logger.Warn("undecodable webhook body")
		return
	}
	logger.Debug("webhook received", zap.String("event", req.Event))

	result, err := h.service.HandleInviteeCreated(r.Context(), req.toBookingRequest())
	if err != nil {
		if result != nil {
			logger.Warn("order created but webhook handling incomplete",
				zap.Int("order_id", result.OrderID),
				zap.Error(err),
			)
		}
		respondError(w, logger, err)
		return
	}

	respondJSON(w, http.StatusOK, InviteeCreatedResponse{
		Message:    fmt.Sprintf("Order %d created", result.OrderID),
		CustomerID: result.CustomerID,
		OrderID:    result.OrderID,
		ManagerID:  result.ManagerID,
	})
}
