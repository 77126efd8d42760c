package exec

import (
	"context"
	"fmt"
	"strings"
	"time"

	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repository"
	pkghttp "copydesk/pkg/http"
	"copydesk/pkg/logger"
)

const execAPIKeyHeader = "X-EXEC-API-KEY"

// Client talks to the external execution bridge that owns order queueing
// and position-sizing math.
type Client struct {
	base   string
	apiKey string
	http   *pkghttp.Client
	logger *logger.Logger
}

// Option configures Client.
type Option func(*Client)

// NewClient creates an execution bridge client.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		apiKey: apiKey,
		http:   pkghttp.NewClient(pkghttp.WithTimeout(30 * time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *pkghttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// SubmitQueue posts a finished queue plan and returns the bridge's per-status
// counts. The result is surfaced verbatim, never interpreted.
func (c *Client) SubmitQueue(ctx context.Context, plan models.QueuePlan) (*models.PlanResult, error) {
	var result models.PlanResult
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method:  pkghttp.MethodPost,
		URL:     c.base + "/copy/queue",
		Headers: c.headers(),
		Body:    plan,
	}, &result)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("queue submission failed",
				logger.String("plan", plan.PlanName),
				logger.Int("items", len(plan.Items)),
				logger.Error(err),
			)
		}
		return nil, fmt.Errorf("submit queue: %w", err)
	}
	return &result, nil
}

// SizingCalc delegates position sizing to the bridge.
func (c *Client) SizingCalc(ctx context.Context, req *models.SizingRequest) (*models.SizingResponse, error) {
	var result models.SizingResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method:  pkghttp.MethodPost,
		URL:     c.base + "/sizing/calc",
		Headers: c.headers(),
		Body:    req,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("sizing calc: %w", err)
	}
	return &result, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		execAPIKeyHeader: c.apiKey,
		"Content-Type":   "application/json",
	}
}

var (
	_ repository.Submitter = (*Client)(nil)
	_ repository.Sizer     = (*Client)(nil)
)
