package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nmoreno/bazaar-backend/pkg/config"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

var (
	errEndpointRequired = errors.New("social endpoint is required")
	errTokenRequired    = errors.New("social access token is required")
)

// Announcer publishes storefront announcements to the social feed.
type Announcer interface {
	Announce(ctx context.Context, announcement Announcement) error
}

// Announcement is a single post sent to the social feed.
type Announcement struct {
	Message   string `json:"message"`
	ImagePath string `json:"image_path,omitempty"`
}

// Client posts announcements to the configured social endpoint.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the social client from configuration.
func NewClient(cfg config.SocialConfig, opts ...Option) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errEndpointRequired
	}
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" {
		return nil, errTokenRequired
	}

	client := &Client{
		endpoint:    endpoint,
		accessToken: token,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// Announce posts the announcement. Callers treat failures as best-effort.
func (c *Client) Announce(ctx context.Context, announcement Announcement) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "social client not configured")
	}
	if strings.TrimSpace(announcement.Message) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "announcement message is required")
	}

	payload, err := json.Marshal(announcement)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal announcement")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build announcement request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute announcement request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), "announcement request failed")
	}

	return nil
}
