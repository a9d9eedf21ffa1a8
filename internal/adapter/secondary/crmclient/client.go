package crmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/remote"
	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

const apiPrefix = "/api/v5"

// Client implements secondary.CRMClient against the RetailCRM v5 API.
type Client struct {
	remote  *remote.Client
	baseURL string
	apiKey  string
	site    string
	logger  *zap.Logger
}

var _ secondary.CRMClient = (*Client)(nil)

// NewClient creates a CRM client from configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		remote:  remote.NewClient("crm", cfg.HTTPClientTimeout, logger),
		baseURL: remote.JoinURL(cfg.CRMBaseURL, apiPrefix),
		apiKey:  cfg.CRMAPIKey,
		site:    cfg.Business.Site,
		logger:  logger.Named("crm-client"),
	}
}

// FindCustomerByEmail returns the first customer whose email matches exactly.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := url.Values{"filter[email]": {email}}
	if c.site != "" {
		query.Set("site", c.site)
	}

	var out customersResponse
	if err := c.call(ctx, http.MethodGet, "customers", query, nil, &out); err != nil {
		return nil, err
	}

	for _, customer := range out.Customers {
		if strings.EqualFold(customer.Email, email) {
			return customer.toEntity(), nil
		}
	}
	return nil, nil
}

// CreateCustomer creates a customer and returns the new id.
func (c *Client) CreateCustomer(ctx context.Context, customer *entity.Customer) (int, error) {
	form, err := c.form("customer", customerFromEntity(customer))
	if err != nil {
		return 0, err
	}

	var out createResponse
	if err := c.call(ctx, http.MethodPost, "customers/create", nil, form, &out); err != nil {
		return 0, err
	}

	c.logger.Info("customer created", zap.Int("customer_id", out.ID))
	return out.ID, nil
}

// CreateOrder creates an order and returns the new id.
func (c *Client) CreateOrder(ctx context.Context, order *entity.Order) (int, error) {
	dto, err := orderFromEntity(order)
	if err != nil {
		return 0, err
	}
	form, err := c.form("order", dto)
	if err != nil {
		return 0, err
	}

	var out orderResponse
	if err := c.call(ctx, http.MethodPost, "orders/create", nil, form, &out); err != nil {
		return 0, err
	}

	id := out.ID
	if id == 0 && out.Order != nil {
		id = out.Order.ID
	}
	return id, nil
}

// FindOrderByCustomField returns the first order whose custom field code
// equals value.
func (c *Client) FindOrderByCustomField(ctx context.Context, code, value string) (*entity.Order, error) {
	query := url.Values{fmt.Sprintf("filter[customFields][%s]", code): {value}}

	var out ordersResponse
	if err := c.call(ctx, http.MethodGet, "orders", query, nil, &out); err != nil {
		return nil, err
	}

	if len(out.Orders) == 0 {
		return nil, nil
	}
	if len(out.Orders) > 1 {
		c.logger.Warn("several orders match, using the first",
			zap.String("field", code),
			zap.Int("matches", len(out.Orders)),
		)
	}
	return out.Orders[0].toEntity(), nil
}

// EditOrder updates the order identified by order.ID.
func (c *Client) EditOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	dto, err := orderFromEntity(order)
	if err != nil {
		return nil, err
	}
	form, err := c.form("order", dto)
	if err != nil {
		return nil, err
	}
	form.Set("by", "id")

	var out orderResponse
	path := "orders/" + strconv.Itoa(order.ID) + "/edit"
	if err := c.call(ctx, http.MethodPost, path, nil, form, &out); err != nil {
		return nil, err
	}

	if out.Order == nil {
		return nil, nil
	}
	return out.Order.toEntity(), nil
}

// ListUsers returns one page of CRM users.
func (c *Client) ListUsers(ctx context.Context, limit int) ([]entity.User, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var out usersResponse
	if err := c.call(ctx, http.MethodGet, "users", query, nil, &out); err != nil {
		return nil, err
	}

	users := make([]entity.User, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, entity.User{ID: u.ID, Email: u.Email, Active: u.Active})
	}
	return users, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.remote.Close()
}

// form encodes value as JSON under field, next to the site code.
func (c *Client) form(field string, value interface{}) (url.Values, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", field, err)
	}
	form := url.Values{field: {string(raw)}}
	if c.site != "" {
		form.Set("site", c.site)
	}
	return form, nil
}

// call performs a request and decodes the reply into out. A reply without
// success is an APIError whatever its status code.
func (c *Client) call(ctx context.Context, method, path string, query, form url.Values, out result) error {
	resp, err := c.remote.Do(ctx, remote.Request{
		Method: method,
		URL:    remote.JoinURL(c.baseURL, path),
		Query:  query,
		Header: http.Header{"X-API-KEY": {c.apiKey}},
		Form:   form,
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		if !resp.OK() {
			return c.remote.Fail(resp.StatusCode, http.StatusText(resp.StatusCode), nil)
		}
		return c.remote.Fail(resp.StatusCode, "malformed response body", []string{err.Error()})
	}

	env := out.base()
	if !resp.OK() || !env.Success {
		msg := env.ErrorMsg
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return c.remote.Fail(resp.StatusCode, msg, env.details())
	}
	return nil
}
