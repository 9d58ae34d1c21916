package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"represent/pkg/requestcontext"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Caller performs observed JSON GET requests against one provider.
// It never retries; each call is exactly one outbound request.
type Caller struct {
	providerID string
	client     Doer
	timeout    time.Duration
	observer   *Observer
}

// NewCaller builds a Caller. timeout bounds each call; zero means no bound
// beyond the caller's context.
func NewCaller(providerID string, client Doer, timeout time.Duration, observer *Observer) *Caller {
	if client == nil {
		client = http.DefaultClient
	}
	if observer == nil {
		observer = NewObserver(nil, nil)
	}
	return &Caller{providerID: providerID, client: client, timeout: timeout, observer: observer}
}

// ProviderID returns the provider this caller talks to.
func (c *Caller) ProviderID() string {
	return c.providerID
}

// GetJSON issues GET rawURL with header and decodes a 2xx body into out.
// Every failure comes back as a *ProviderError.
func (c *Caller) GetJSON(ctx context.Context, operation, rawURL string, header http.Header, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, call := c.observer.Start(ctx, c.providerID, operation, attribute.String("http.method", http.MethodGet))
	status, err := c.do(ctx, rawURL, header, out)
	call.End(status, err)
	return err
}

func (c *Caller) do(ctx context.Context, rawURL string, header http.Header, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, NewProviderError(ErrorInternal, c.providerID, "build request", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if id := requestcontext.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, c.transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		category := CategorizeStatus(resp.StatusCode)
		return resp.StatusCode, NewProviderError(category, c.providerID,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil).WithStatus(resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, NewProviderError(ErrorBadData, c.providerID, "decode response", err).WithStatus(resp.StatusCode)
		}
	}
	return resp.StatusCode, nil
}

func (c *Caller) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewProviderError(ErrorTimeout, c.providerID, "request timed out", err)
	}
	return NewProviderError(ErrorProviderOutage, c.providerID, "request failed", err)
}

// CategorizeStatus maps a non-2xx upstream status to a failure category.
func CategorizeStatus(status int) ErrorCategory {
	switch {
	case status == http.StatusNotFound:
		return ErrorNotFound
	case status == http.StatusTooManyRequests:
		return ErrorRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorAuthentication
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrorTimeout
	default:
		return ErrorProviderOutage
	}
}
