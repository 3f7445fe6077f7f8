// Package smoke verifies that a deployed assistant answers on its public routes.
package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inbucket/html2text"

	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/pkg/retry"
)

const (
	maxResponseSize     = 1 << 20 // 1MB limit
	defaultCheckTimeout = 15 * time.Second
)

// ErrUnhealthy is returned when /health answers but does not report "healthy".
var ErrUnhealthy = errors.New("service reported unhealthy")

type Report struct {
	BotInitialized    bool
	KnowledgeBaseSize int
	// Documents is the number of entries listed by /api/knowledge-base; -1 when
	// the bot is not initialized and the route answers 500.
	Documents int
	PageText  string
}

type Checker struct {
	baseURL string
	client  *http.Client
	retrier *retry.Retrier
}

func NewCheckerWithTimeout(baseURL string, timeout time.Duration, retryCfg *retry.Config) *Checker {
	if retryCfg == nil {
		retryCfg = retry.NewDefaultConfig()
	}
	return &Checker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		retrier: retry.NewRetrier(retryCfg),
	}
}

func NewChecker(baseURL string) *Checker {
	return NewCheckerWithTimeout(baseURL, defaultCheckTimeout, nil)
}

// OnRetry registers a callback invoked before each health poll retry.
func (c *Checker) OnRetry(fn func(attempt int, err error)) {
	c.retrier.OnRetry = fn
}

// Run polls /health until it answers, then checks the knowledge base listing
// and the chat page.
func (c *Checker) Run(ctx context.Context) (Report, error) {
	var report Report

	health, err := c.Health(ctx)
	if err != nil {
		return report, err
	}
	report.BotInitialized = health.BotInitialized
	report.KnowledgeBaseSize = health.KnowledgeBaseSize

	if report.Documents, err = c.KnowledgeBase(ctx); err != nil {
		return report, err
	}
	if report.PageText, err = c.Page(ctx); err != nil {
		return report, err
	}
	return report, nil
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status            string `json:"status"`
	BotInitialized    bool   `json:"bot_initialized"`
	KnowledgeBaseSize int    `json:"knowledge_base_size"`
}

// Health polls /health with backoff. Connection failures and 5xx answers are
// retried; anything else fails at once.
func (c *Checker) Health(ctx context.Context) (HealthStatus, error) {
	var health HealthStatus
	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		resp, err := c.get(ctx, "/health")
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("health: HTTP %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return retry.Permanent(fmt.Errorf("health: HTTP %d", resp.StatusCode))
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&health); err != nil {
			return retry.Permanent(fmt.Errorf("health: decode: %w", err))
		}
		if health.Status != "healthy" {
			return retry.Permanent(fmt.Errorf("%w: status %q", ErrUnhealthy, health.Status))
		}
		return nil
	})
	return health, err
}

func (c *Checker) KnowledgeBase(ctx context.Context) (int, error) {
	resp, err := c.get(ctx, "/api/knowledge-base")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusInternalServerError {
		return -1, nil
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("knowledge base: HTTP %d", resp.StatusCode)
	}

	var listing map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&listing); err != nil {
		return 0, fmt.Errorf("knowledge base: decode: %w", err)
	}
	return len(listing), nil
}

// Page fetches the chat page as plain text and checks it carries the bot name.
func (c *Checker) Page(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, "/")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat page: HTTP %d", resp.StatusCode)
	}

	text, err := html2text.FromReader(io.LimitReader(resp.Body, maxResponseSize), html2text.Options{
		OmitLinks:    true,
		PrettyTables: true,
	})
	if err != nil {
		return "", fmt.Errorf("chat page: read body: %w", err)
	}
	if !strings.Contains(text, core.BotName) {
		return text, fmt.Errorf("chat page does not mention %q", core.BotName)
	}
	return text, nil
}

func (c *Checker) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.BotUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	return resp, nil
}
