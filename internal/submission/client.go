package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the local backend the form posts to.
const DefaultEndpoint = "http://localhost:8080/api/aprovados"

// maxErrorBody caps how much of a failed response is kept for logging.
const maxErrorBody = 64 * 1024

// Result is the decoded JSON body of a successful submission. Its contents
// are not interpreted.
type Result = any

// Client performs one POST per submission. It never retries.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for endpoint. A nil httpClient gets a client with
// a 30 second timeout.
func NewClient(endpoint string, httpClient *http.Client, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts the aprovado and optional photo. Any non-2xx status yields a
// *StatusError; a 2xx body that is not JSON yields ErrInvalidResponse.
func (c *Client) Submit(ctx context.Context, a Aprovado, photo *Photo) (Result, error) {
	body, contentType, err := BuildPayload(a, photo)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(raw),
		}
		c.logger.Error("backend rejected submission",
			slog.Int("status", resp.StatusCode),
			slog.String("body", statusErr.Body))
		return nil, statusErr
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	c.logger.Info("aprovado registered", slog.Any("result", result))
	return result, nil
}

// statusText mirrors the reason phrase, e.g. "Bad Request" for "400 Bad Request".
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
