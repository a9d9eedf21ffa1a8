package secondary

import (
	"context"

	"github.com/ruudy-sib/demobridge/internal/domain/entity"
)

// CRMClient defines the secondary port for the customer/order management system.
// Every method returns either a *remote.APIError (unwrapping to domain.ErrRemote)
// or an error wrapping domain.ErrTransport on failure.
type CRMClient interface {
	// FindCustomerByEmail returns the first customer with exactly this email,
	// or nil when there is none.
	FindCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// CreateCustomer creates a customer and returns its id.
	CreateCustomer(ctx context.Context, customer *entity.Customer) (int, error)

	// CreateOrder creates an order and returns its id.
	CreateOrder(ctx context.Context, order *entity.Order) (int, error)

	// FindOrderByCustomField returns the first order whose custom field equals
	// value, or nil when there is none.
	FindOrderByCustomField(ctx context.Context, code, value string) (*entity.Order, error)

	// EditOrder updates the order identified by order.ID and returns the
	// order as stored by the CRM, or nil if none was returned.
	EditOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)

	// ListUsers returns a single page of up to limit CRM users.
	ListUsers(ctx context.Context, limit int) ([]entity.User, error)
}
