package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jkruckivey/assessments/internal/core"
)

// DefaultTimeout bounds a single completion request when no timeout is configured.
const DefaultTimeout = 120 * time.Second

// maxResponseSize caps how much of a provider reply is read.
const maxResponseSize = 4 << 20

// StatusError is returned when a provider answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// Option customizes a provider at construction.
type Option func(*baseProvider)

// WithTimeout sets the HTTP client timeout. Non-positive values keep DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(b *baseProvider) {
		if d > 0 {
			b.client.Timeout = d
		}
	}
}

type baseProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func newBaseProvider(baseURL, apiKey, model string, opts ...Option) baseProvider {
	b := baseProvider{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *baseProvider) doRequest(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", core.BotUserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}

// postJSON sends payload and returns the response body of a 2xx answer.
// Other statuses come back as *StatusError carrying the body.
func (b *baseProvider) postJSON(ctx context.Context, path string, payload any, headers map[string]string) ([]byte, error) {
	resp, err := b.doRequest(ctx, http.MethodPost, path, payload, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
