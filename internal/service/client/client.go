package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	api "github.com/oshokin/safelink/internal/api/http/safelink"
	"github.com/oshokin/safelink/internal/config"
	domain "github.com/oshokin/safelink/internal/domain/coordination"
	"github.com/oshokin/safelink/internal/geo"
)

// Client wraps the safelink HTTP API with convenience helpers.
type Client struct {
	// baseURL is the server address including scheme, without trailing slash.
	baseURL string
	// httpClient performs the requests.
	httpClient *http.Client

	// callTimeout is the default timeout for individual calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for API calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// New builds a client for the server at the given host:port address.
// Note: plain HTTP; deploy on a trusted network or terminate TLS in a
// proxy in front of the server.
func New(address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := &Client{
		baseURL:     "http://" + address,
		httpClient:  http.DefaultClient,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Status is the decoded response of the mutation endpoints.
type Status struct {
	// Status is the outcome reported by the server.
	Status string `json:"status"`
	// Distance is filled in by /send_response.
	Distance string `json:"distance,omitempty"`
}

// ReportLocation pushes a position update for the user.
func (c *Client) ReportLocation(
	ctx context.Context,
	user string,
	location geo.Point,
	shareLocation bool,
) (*Status, error) {
	return c.post(ctx, "/update_location", map[string]any{
		"username":     user,
		"lat":          location.Lat,
		"lng":          location.Lng,
		"showLocation": shareLocation,
	})
}

// DisableSharing hides the user's position from other pollers.
func (c *Client) DisableSharing(ctx context.Context, user string) (*Status, error) {
	return c.post(ctx, "/remove_location", map[string]any{"username": user})
}

// SendAlert raises or cancels the user's alert at the given position.
func (c *Client) SendAlert(ctx context.Context, user string, location geo.Point, needsHelp bool) (*Status, error) {
	return c.post(ctx, "/send_alert", map[string]any{
		"username": user,
		"lat":      location.Lat,
		"lng":      location.Lng,
		"helping":  needsHelp,
	})
}

// Respond registers the helper as tracking the needy user. The returned
// status carries the computed distance.
func (c *Client) Respond(ctx context.Context, helper, needy string, location geo.Point) (*Status, error) {
	return c.post(ctx, "/send_response", map[string]any{
		"helper": helper,
		"needy":  needy,
		"lat":    location.Lat,
		"lng":    location.Lng,
	})
}

// RefineDistance pushes an updated distance for an existing response.
func (c *Client) RefineDistance(ctx context.Context, needy, helper, distance string) (*Status, error) {
	return c.post(ctx, "/notify_needy", map[string]any{
		"needy":    needy,
		"helper":   helper,
		"distance": distance,
	})
}

// MarkSafe releases the user's responders.
func (c *Client) MarkSafe(ctx context.Context, user string) (*Status, error) {
	return c.post(ctx, "/notify_safe", map[string]any{"username": user})
}

// Logout detaches the user from all coordination state.
func (c *Client) Logout(ctx context.Context, user string) (*Status, error) {
	return c.post(ctx, "/logout", map[string]any{"username": user})
}

// Alerts polls the alert list as seen by the given requester.
// An empty requester polls anonymously.
func (c *Client) Alerts(ctx context.Context, requester string) ([]domain.Alert, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.baseURL+"/get_alerts", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if requester != "" {
		req.Header.Set(api.RequesterHeader, requester)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get alerts: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get alerts: unexpected status %s", resp.Status)
	}

	var alerts []domain.Alert
	if err := json.NewDecoder(resp.Body).Decode(&alerts); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}

	return alerts, nil
}

// post sends a JSON body to the path and decodes the status response.
// Non-2xx responses still carry a status body; the decoded status is
// returned alongside the error so callers can surface it.
func (c *Client) post(ctx context.Context, path string, body map[string]any) (*Status, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &status, fmt.Errorf("%s: server returned %s (%s)", path, resp.Status, status.Status)
	}

	return &status, nil
}

// callContext derives a per-call timeout context.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.callTimeout)
}
