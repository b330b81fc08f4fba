package ga4

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const defaultBaseURL = "https://analyticsdata.googleapis.com/v1beta"

// TokenSource supplies a bearer token for the Data API. The onboarding
// flow stores a refreshed OAuth token per property; a static token works
// for service-account setups.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource wrapping a fixed bearer token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Client is a thin wrapper over the two Data API report endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a non-default API host (tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(tokens TokenSource, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		tokens:     tokens,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunReport executes a single report against the property.
func (c *Client) RunReport(ctx context.Context, propertyID string, req ReportRequest) (*ReportResponse, error) {
	url := fmt.Sprintf("%s/properties/%s:runReport", c.baseURL, propertyID)

	var response ReportResponse
	if err := c.post(ctx, url, req, &response); err != nil {
		return nil, fmt.Errorf("run report for property %s: %w", propertyID, err)
	}

	c.logger.Debug("GA4 report fetched",
		slog.String("property_id", propertyID),
		slog.Int("rows", len(response.Rows)))
	return &response, nil
}

// BatchRunReports executes up to five reports in one round trip.
func (c *Client) BatchRunReports(ctx context.Context, propertyID string, reqs []ReportRequest) ([]ReportResponse, error) {
	url := fmt.Sprintf("%s/properties/%s:batchRunReports", c.baseURL, propertyID)

	body := struct {
		Requests []ReportRequest `json:"requests"`
	}{Requests: reqs}

	var response BatchResponse
	if err := c.post(ctx, url, body, &response); err != nil {
		return nil, fmt.Errorf("batch run reports for property %s: %w", propertyID, err)
	}

	c.logger.Debug("GA4 report batch fetched",
		slog.String("property_id", propertyID),
		slog.Int("reports", len(response.Reports)))
	return response.Reports, nil
}

func (c *Client) post(ctx context.Context, url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("resolve access token: %w", err)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateBody(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncateBody(data []byte) string {
	const max = 512
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
