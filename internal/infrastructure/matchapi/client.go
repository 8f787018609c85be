package matchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lookalike/web/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// maxResponseBytes caps how much of a backend response is read
	maxResponseBytes = 8 << 20

	userAgent = "lookalike-web/1.0"
)

// Client handles communication with the remote matching service
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	logger      logrus.FieldLogger
	debug       bool
}

// NewClient creates a new matching service client. A zero timeout leaves
// requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Inf, 1),
		logger:      logger.WithField("component", "matchapi"),
	}
}

// SetRateLimit bounds outbound requests to perSecond with the given burst.
// perSecond <= 0 disables limiting.
func (c *Client) SetRateLimit(perSecond float64, burst int) {
	if perSecond <= 0 {
		c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	if burst < 1 {
		burst = 1
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// SetDebug enables logging of raw response bodies
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		c.logger.Debugf(format, args...)
	}
}

// do executes a request after waiting on the rate limiter and returns the
// status code and (size limited) body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (int, []byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := readLimitedBody(resp.Body, maxResponseBytes)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading body: %v", domain.ErrBackendUnavailable, err)
	}
	c.debugLog("%s %s -> %d: %s", method, path, resp.StatusCode, string(data))

	return resp.StatusCode, data, nil
}

// FetchFilters retrieves the allowed values of every facet
func (c *Client) FetchFilters(ctx context.Context) (*domain.FilterOptions, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/filters", nil, "")
	if err != nil {
		c.logger.WithError(err).Warn("filters request failed")
		return nil, err
	}

	if status != http.StatusOK {
		c.logger.WithField("status", status).Warn("filters request rejected")
		return nil, fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, status)
	}

	var options domain.FilterOptions
	if err := json.Unmarshal(body, &options); err != nil {
		return nil, fmt.Errorf("%w: failed to decode filters: %v", domain.ErrMalformedResponse, err)
	}

	options = options.Normalize()
	c.logger.WithFields(logrus.Fields{
		"categories": len(options.Categories),
		"brands":     len(options.Brands),
		"colors":     len(options.Colors),
		"genders":    len(options.Genders),
	}).Debug("filters loaded")

	return &options, nil
}

// Match submits one match request. Failures reported by the service are
// returned as *domain.BackendError; nothing is retried.
func (c *Client) Match(ctx context.Context, req *domain.MatchRequest) (*domain.MatchResponse, error) {
	if req == nil || domain.IsEmptyInput(req.Input) {
		return nil, domain.ErrNoSearchInput
	}

	body, contentType, err := encodeMatchForm(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode match request: %w", err)
	}

	log := c.logger.WithField("input", inputKind(req.Input))
	status, data, err := c.do(ctx, http.MethodPost, "/match", body, contentType)
	if err != nil {
		log.WithError(err).Warn("match request failed")
		return nil, err
	}

	resp, err := decodeMatchResponse(status, data)
	if err != nil {
		log.WithError(err).WithField("status", status).Warn("match request unsuccessful")
		return nil, err
	}

	log.WithField("results", len(resp.Results)).Info("match request completed")
	return resp, nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
