// Package api implements the StartupLens REST client: the single
// request pipeline every query and mutation goes through.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/startuplens/lens/internal/apierr"
	"github.com/startuplens/lens/internal/metrics"
	"github.com/startuplens/lens/pkg/session"
)

// HTTPClient abstracts HTTP calls for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues requests against the StartupLens API. Before dispatch
// it reads the session store and attaches the access token as a bearer
// credential when one is present; anonymous requests pass through
// untouched. Failures are normalized into *apierr.APIError. There is
// no automatic retry and no token refresh: a 401 surfaces to the
// caller as-is.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	sessions   session.Store
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClient creates a new API client over the given session store.
func NewClient(baseURL string, sessions session.Store, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sessions:   sessions,
		logger:     logger.With().Str("component", "api").Logger(),
	}
}

// SetHTTPClient sets a custom HTTP client (for testing or timeouts).
func (c *Client) SetHTTPClient(hc HTTPClient) {
	c.httpClient = hc
}

// SetMetrics wires request metrics into the pipeline.
func (c *Client) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type ctxKey struct{}

// WithRequestID returns a context carrying an explicit request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

// do executes a request and decodes the JSON response into out (when
// out is non-nil). All failure modes come back as *apierr.APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apierr.Transport(fmt.Errorf("encoding request: %w", err))
		}
		rdr = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return apierr.Transport(fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestIDFrom(ctx))

	if s := c.sessions.Read(); s.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.ObserveDuration(method, path, time.Since(start).Seconds())
	}
	if err != nil {
		c.recordRequest(method, path, 0)
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("transport failure")
		return apierr.Transport(err)
	}
	defer resp.Body.Close()

	c.recordRequest(method, path, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.Transport(fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode >= 400 {
		apiErr := apierr.FromResponse(resp.StatusCode, respBody)
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("API error")
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apierr.Transport(fmt.Errorf("decoding response: %w", err))
		}
	}
	return nil
}

func (c *Client) recordRequest(method, path string, status int) {
	if c.metrics == nil {
		return
	}
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.metrics.RecordRequest(method, path, label)
}
