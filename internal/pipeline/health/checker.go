// Package health polls an HTTP endpoint until it answers with a success
// status. A deploy only counts as done once the poll succeeds.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultInterval = 2 * time.Second
	defaultTimeout  = 30 * time.Second
)

type Checker struct {
	client   *http.Client
	interval time.Duration
	timeout  time.Duration
}

func NewChecker(interval, timeout time.Duration) *Checker {
	if interval <= 0 {
		interval = defaultInterval
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Checker{
		client:   &http.Client{Timeout: interval},
		interval: interval,
		timeout:  timeout,
	}
}

// Wait polls url until it returns a 2xx status or the timeout elapses. The
// first request is made immediately.
func (c *Checker) Wait(ctx context.Context, url string) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	var lastErr error
	for {
		err := c.probe(waitCtx, url)
		if err == nil {
			slog.Info("Health check passed.", "url", url)
			return nil
		}
		lastErr = err
		slog.Info("Health check not ready.", "url", url, "reason", err)

		select {
		case <-waitCtx.Done():
			return fmt.Errorf("health check %s did not pass within %s: %w", url, c.timeout, lastErr)
		case <-ticker.C:
		}
	}
}

func (c *Checker) probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status: %s", res.Status)
	}
	return nil
}
