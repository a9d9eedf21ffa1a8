package bookingclient

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/remote"
	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain/entity"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// Client implements secondary.BookingClient against the Calendly v2 API.
type Client struct {
	remote  *remote.Client
	baseURL string
	token   string
	logger  *zap.Logger
}

var _ secondary.BookingClient = (*Client)(nil)

type resourceEnvelope[T any] struct {
	Resource T `json:"resource"`
}

type userResource struct {
	URI                 string `json:"uri"`
	CurrentOrganization string `json:"current_organization"`
}

type subscriptionResource struct {
	URI         string `json:"uri"`
	CallbackURL string `json:"callback_url"`
	State       string `json:"state"`
}

type subscriptionBody struct {
	URL          string   `json:"url"`
	Events       []string `json:"events"`
	User         string   `json:"user,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Scope        string   `json:"scope"`
}

type errorBody struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Details []struct {
		Parameter string `json:"parameter"`
		Message   string `json:"message"`
	} `json:"details"`
}

// NewClient creates a booking provider client from configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		remote:  remote.NewClient("booking", cfg.HTTPClientTimeout, logger),
		baseURL: cfg.BookingBaseURL,
		token:   cfg.BookingToken,
		logger:  logger.Named("booking-client"),
	}
}

// CurrentUser returns the account the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*entity.BookingUser, error) {
	var out resourceEnvelope[userResource]
	if err := c.call(ctx, http.MethodGet, "users/me", nil, &out); err != nil {
		return nil, err
	}
	return &entity.BookingUser{
		URI:          out.Resource.URI,
		Organization: out.Resource.CurrentOrganization,
	}, nil
}

// CreateWebhookSubscription registers a webhook subscription.
func (c *Client) CreateWebhookSubscription(ctx context.Context, req entity.SubscriptionRequest) (*entity.Subscription, error) {
	body := subscriptionBody{
		URL:          req.CallbackURL,
		Events:       req.Events,
		User:         req.User,
		Organization: req.Organization,
		Scope:        req.Scope,
	}

	var out resourceEnvelope[subscriptionResource]
	if err := c.call(ctx, http.MethodPost, "webhook_subscriptions", body, &out); err != nil {
		return nil, err
	}

	c.logger.Info("webhook subscription created", zap.String("uri", out.Resource.URI))
	return &entity.Subscription{
		URI:         out.Resource.URI,
		CallbackURL: out.Resource.CallbackURL,
		State:       out.Resource.State,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.remote.Close()
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.remote.Do(ctx, remote.Request{
		Method: method,
		URL:    remote.JoinURL(c.baseURL, path),
		Header: http.Header{"Authorization": {"Bearer " + c.token}},
		JSON:   body,
	})
	if err != nil {
		return err
	}

	if !resp.OK() {
		return c.fail(resp)
	}
	return c.remote.Decode(resp, out)
}

func (c *Client) fail(resp *remote.Response) error {
	var body errorBody
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return c.remote.Fail(resp.StatusCode, http.StatusText(resp.StatusCode), nil)
	}

	msg := body.Message
	if body.Title != "" && msg != "" {
		msg = body.Title + ": " + msg
	} else if msg == "" {
		msg = body.Title
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	details := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		if d.Parameter != "" {
			details = append(details, d.Parameter+": "+d.Message)
			continue
		}
		details = append(details, d.Message)
	}
	return c.remote.Fail(resp.StatusCode, msg, details)
}
