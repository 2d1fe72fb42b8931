// Package client delegates WACC computation to a remote calculator
// API. The frontend form treats this as a black box: one request per
// submission, a fixed time budget, and either a full result or a
// structured error.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/HarshMaht02004/wacc-backend/internal/wacc"
	"github.com/HarshMaht02004/wacc-backend/pkg/config"
	"github.com/HarshMaht02004/wacc-backend/pkg/httputil"
	"github.com/HarshMaht02004/wacc-backend/pkg/logger"
)

// Client calls a remote WACC calculator endpoint.
type Client struct {
	http    *httputil.Client
	baseURL string
	timeout time.Duration
	logger  *logger.Logger
}

// New creates a client from calculator config. The configured timeout
// (7s by default) bounds each call end to end.
func New(cfg config.CalculatorConfig, log *logger.Logger) *Client {
	return &Client{
		// The caller decides whether a stale result is still wanted;
		// silent retries would blow the interactive budget.
		http:    httputil.NewWithTimeout(log, cfg.Timeout).DisableRetry(),
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		logger:  log,
	}
}

type computeResponse struct {
	Success bool        `json:"success"`
	Data    wacc.Result `json:"data"`
}

type errorResponse struct {
	Error string    `json:"error"`
	Kind  wacc.Kind `json:"kind"`
}

// Compute posts the input record and decodes the result. Remote
// validation and missing-input failures come back as *wacc.Error with
// their original kind; transport failures are plain errors.
func (c *Client) Compute(ctx context.Context, in wacc.Input) (wacc.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/v1/wacc", in)
	if err != nil {
		return wacc.Result{}, fmt.Errorf("calculator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return wacc.Result{}, decodeError(resp)
	}

	var out computeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return wacc.Result{}, fmt.Errorf("decode calculator response: %w", err)
	}

	return out.Data, nil
}

// decodeError rebuilds the structured error from an error body, so
// callers can branch on the kind exactly as with a local computation.
func decodeError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("calculator returned status %d", resp.StatusCode)
	}

	if body.Kind != "" {
		return &wacc.Error{Kind: body.Kind, Message: body.Error}
	}

	return fmt.Errorf("calculator rejected request: %s", body.Error)
}
