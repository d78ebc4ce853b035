// Package api implements the Store interface against the remote beasiswa
// HTTP API (the Vercel deployment fronting the database).
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

// Client talks to the remote storage API. All calls carry short timeouts; the
// remote performing delete-then-insert server-side is what makes
// SaveScholarships a replace.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")
	return &Client{http: client, logger: logger}
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ClearScholarships deletes all stored records. Idempotent on the remote side.
func (c *Client) ClearScholarships(ctx context.Context) error {
	var body statusResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("action", "clear").
		SetResult(&body).
		Delete("/api/beasiswa")
	if err != nil {
		return fmt.Errorf("clear beasiswa: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || !body.Success {
		return fmt.Errorf("clear beasiswa: status %d: %s", resp.StatusCode(), body.Message)
	}
	return nil
}

// SaveScholarships sends the batch with clearFirst=true so the remote replaces
// its stored set even when a preceding ClearScholarships failed.
func (c *Client) SaveScholarships(ctx context.Context, list []beasiswa.Scholarship) error {
	var body statusResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"beasiswaList": list,
			"clearFirst":   true,
		}).
		SetResult(&body).
		Post("/api/beasiswa")
	if err != nil {
		return fmt.Errorf("save beasiswa: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || !body.Success {
		return fmt.Errorf("save beasiswa: status %d: %s", resp.StatusCode(), body.Message)
	}
	c.logger.Info("batch saved to remote storage", zap.Int("records", len(list)))
	return nil
}

// ListScholarships returns the remote response body verbatim so the control
// surface can proxy it without reshaping.
func (c *Client) ListScholarships(ctx context.Context, category string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if category != "" {
		req.SetQueryParam("kategori", category)
	}
	resp, err := req.Get("/api/beasiswa")
	if err != nil {
		return nil, fmt.Errorf("list beasiswa: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("list beasiswa: status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

// CountScholarships reports how many records the remote currently stores.
func (c *Client) CountScholarships(ctx context.Context) (int, error) {
	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/api/beasiswa")
	if err != nil {
		return 0, fmt.Errorf("count beasiswa: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("count beasiswa: status %d", resp.StatusCode())
	}
	return len(body.Data), nil
}

// ClearLogs deletes the previous run's log entries.
func (c *Client) ClearLogs(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/api/logs")
	if err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("clear logs: status %d", resp.StatusCode())
	}
	return nil
}

// SaveLogs appends the given entries to the remote log store.
func (c *Client) SaveLogs(ctx context.Context, entries []beasiswa.LogEntry) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"logs": entries}).
		Post("/api/logs")
	if err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("save logs: status %d", resp.StatusCode())
	}
	return nil
}

// Close is a no-op; resty clients hold no resources needing release.
func (c *Client) Close() {}
