package analyticsclient

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

// Client implements secondary.AnalyticsClient against the Amplitude HTTP v2 API.
type Client struct {
	remote *remote.Client
	url    string
	apiKey string
	logger *zap.Logger
}

var _ secondary.AnalyticsClient = (*Client)(nil)

type eventDTO struct {
	UserID    string `json:"user_id"`
	EventType string `json:"event_type"`
}

type uploadRequest struct {
	APIKey string     `json:"api_key"`
	Events []eventDTO `json:"events"`
}

type uploadResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// NewClient creates an analytics client from configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		remote: remote.NewClient("analytics", cfg.HTTPClientTimeout, logger),
		url:    cfg.AnalyticsURL,
		apiKey: cfg.AnalyticsAPIKey,
		logger: logger.Named("analytics-client"),
	}
}

// LogEvent uploads one event and returns the code the service reported.
func (c *Client) LogEvent(ctx context.Context, event entity.AnalyticsEvent) (int, error) {
	resp, err := c.remote.Do(ctx, remote.Request{
		Method: http.MethodPost,
		URL:    c.url,
		JSON: uploadRequest{
			APIKey: c.apiKey,
			Events: []eventDTO{{UserID: event.UserID, EventType: event.EventType}},
		},
	})
	if err != nil {
		return 0, err
	}

	var out uploadResponse
	if jsonErr := json.Unmarshal(resp.Body, &out); jsonErr != nil {
		if !resp.OK() {
			return resp.StatusCode, c.remote.Fail(resp.StatusCode, http.StatusText(resp.StatusCode), nil)
		}
		return resp.StatusCode, c.remote.Fail(resp.StatusCode, "malformed response body", []string{jsonErr.Error()})
	}

	if !resp.OK() {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return out.Code, c.remote.Fail(resp.StatusCode, msg, nil)
	}

	c.logger.Debug("event uploaded",
		zap.String("event_type", event.EventType),
		zap.Int("code", out.Code),
	)
	return out.Code, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.remote.Close()
}
