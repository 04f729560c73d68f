package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/planfolio/planfolio/internal/domain"
)

const runPath = "/v1/simulation/run"

// Error describes a failed engine call. Status is zero when the failure
// happened before an HTTP status was received.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("engine returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("engine rejected simulation: %s", e.Message)
}

// Client calls the external Monte Carlo engine over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewClient creates a new engine client. Every Run call is bounded by
// timeout on top of whatever deadline the caller's context carries.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
		logger:     logger,
	}
}

// Run submits the plan and decodes the engine's summary.
func (c *Client) Run(ctx context.Context, input domain.SimulationInput) (*domain.SimulationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(buildRequest(input))
	if err != nil {
		return nil, fmt.Errorf("encode simulation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+runPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build simulation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call simulation engine: %w", err)
	}
	defer resp.Body.Close()

	// Cap the body read so a misbehaving engine cannot exhaust memory.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read engine response: %w", err)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("engine call finished")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: truncateBody(raw)}
	}

	var env responseEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed engine response: %w", err)
	}
	if !env.Success {
		return nil, &Error{Message: env.Error}
	}

	return decodeResult(env.Data)
}

// Ping reports whether the engine answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("engine unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &Error{Status: resp.StatusCode, Message: "health check failed"}
	}
	return nil
}

// WaitReady probes the engine with exponential backoff until it answers or
// the context is done. Used at startup so the first user submission does not
// pay the engine's warm-up cost.
func (c *Client) WaitReady(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0 // bounded by ctx only

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		if err := c.Ping(ctx); err != nil {
			c.logger.Debug().Err(err).Int("attempt", attempt).Msg("engine not ready")
			return err
		}
		return nil
	}, backoff.WithContext(b, ctx))
}

func truncateBody(raw []byte) string {
	const max = 512
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max]
	}
	return s
}
