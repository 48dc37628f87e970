package mail

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

const (
	defaultBaseURL              = "https://api.sendgrid.com/v3"
	responseBodyReadLimit int64 = 1024
)

var errAPIKeyRequired = errors.New("sendgrid api key is required")

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single transactional email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Client wraps the SendGrid v3 mail send API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	defaultFrom string
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

// WithBaseURL overrides the configured SendGrid base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the SendGrid client from configuration.
func NewClient(cfg config.MailConfig, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(cfg.APIKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:      trimmedKey,
		baseURL:     defaultBaseURL,
		defaultFrom: strings.TrimSpace(cfg.DefaultFrom),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
	if cfg.BaseURL != "" {
		client.baseURL = strings.TrimSpace(cfg.BaseURL)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPayload struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

// Send delivers the message through SendGrid and blocks until accepted.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "mail client not configured")
	}
	if len(msg.To) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one recipient is required")
	}
	from := strings.TrimSpace(msg.From)
	if from == "" {
		from = c.defaultFrom
	}
	if from == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sender address is required")
	}

	recipients := make([]sendGridAddress, 0, len(msg.To))
	for _, addr := range msg.To {
		trimmed := strings.TrimSpace(addr)
		if trimmed == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "recipient address must not be empty")
		}
		recipients = append(recipients, sendGridAddress{Email: trimmed})
	}

	payload, err := json.Marshal(sendGridPayload{
		Personalizations: []sendGridPersonalization{{To: recipients}},
		From:             sendGridAddress{Email: from},
		Subject:          msg.Subject,
		Content:          []sendGridContent{{Type: "text/plain", Value: msg.Body}},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal mail payload")
	}

	url := c.buildURL("mail/send")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build mail request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute mail request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), "mail request failed")
	}

	return nil
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
