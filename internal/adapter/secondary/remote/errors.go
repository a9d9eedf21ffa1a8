package remote

import (
	"fmt"
	"strings"

	"github.com/ruudy-sib/demobridge/internal/domain"
)

// APIError is a failure reported by a remote service.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s api error (status code: %d): %s", e.Service, e.StatusCode, e.Message)
	if len(e.Errors) > 0 {
		msg += " [" + strings.Join(e.Errors, ", ") + "]"
	}
	return msg
}

// Unwrap lets callers match any APIError with errors.Is(err, domain.ErrRemote).
func (e *APIError) Unwrap() error {
	return domain.ErrRemote
}
