// Package sources adapts external job-search APIs to jobs.Posting.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/time/rate"
)

const (
	httpTimeout  = 15 * time.Second
	maxBodyBytes = 8 << 20
	userAgent    = "rozgaar-ingest/1.0"
)

// Client is the HTTP client shared by all adapters. Each adapter gets its
// own limiter so one slow provider cannot starve another.
type Client struct {
	http *http.Client
	rps  float64
}

func NewClient(rps float64) *Client {
	return &Client{http: &http.Client{Timeout: httpTimeout}, rps: rps}
}

func (c *Client) limiter() *rate.Limiter {
	if c.rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(c.rps), 1)
}

func (c *Client) getJSON(ctx context.Context, lim *rate.Limiter, url string, out any) error {
	if err := lim.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}

// htmlToText turns provider HTML into Markdown; plain text passes through.
func htmlToText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "<") {
		return s
	}
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(md)
}

func parseTime(layouts []string, s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
