package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/domain"
)

// maxBodyBytes bounds webhook bodies.
const maxBodyBytes = 1 << 20

// respondJSON writes a JSON response with the given status code and payload.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are not recoverable at this point, so we ignore the return.
	_ = json.NewEncoder(w).Encode(data)
}

// decodeWebhook reads the request body into a WebhookRequest. It writes the
// error response itself and reports whether decoding succeeded.
func decodeWebhook(w http.ResponseWriter, r *http.Request) (*WebhookRequest, bool) {
	if r.Method != http.MethodPost {
		respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "method not allowed",
			Code:  "METHOD_NOT_ALLOWED",
		})
		return nil, false
	}

	var req WebhookRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
		return nil, false
	}
	return &req, true
}

// respondError maps a service error to its HTTP status and code.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"

	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrOrderNotFound):
		status, code = http.StatusNotFound, "ORDER_NOT_FOUND"
	case errors.Is(err, domain.ErrUnmappedScoring):
		status, code = http.StatusUnprocessableEntity, "UNMAPPED_SCORING"
	case errors.Is(err, domain.ErrAnalyticsRejected):
		status, code = http.StatusBadGateway, "ANALYTICS_REJECTED"
	case errors.Is(err, domain.ErrCustomerUnresolved),
		errors.Is(err, domain.ErrOrderNotCreated),
		errors.Is(err, domain.ErrOrderNotUpdated),
		errors.Is(err, domain.ErrRemote),
		errors.Is(err, domain.ErrTransport):
		status, code = http.StatusBadGateway, "UPSTREAM_ERROR"
	}

	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.Error(err))
		respondJSON(w, status, ErrorResponse{Error: "internal server error", Code: code})
		return
	}
	respondJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}
