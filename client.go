package goKiosk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrEthical07/goKiosk/session"
	"github.com/MrEthical07/goKiosk/signal"
	"github.com/google/uuid"
)

// Client is the request gateway. Every API call passes through it: it
// resolves the bearer token at call time, normalizes every failure into an
// [*APIError], and broadcasts session expiry without touching routing.
//
// Clients are built through [Builder.Build] and safe for concurrent use.
type Client struct {
	config     Config
	baseURL    string
	httpClient *http.Client
	sessions   *session.Store
	tokens     session.TokenStore
	bus        *signal.Bus
	latch      *expiryLatch
	metrics    *Metrics
}

// apiCall describes one outbound request. Exactly one of body and form is
// set; form implies no bearer attachment (the login encoding).
type apiCall struct {
	method string
	path   string
	query  url.Values
	body   any
	form   url.Values
}

// Session returns the session store so feature code can observe state and
// the shell can render the current identity.
func (c *Client) Session() *session.Store {
	if c == nil {
		return nil
	}
	return c.sessions
}

// Logout clears the session explicitly. Unlike forced expiry this emits no
// events: the caller initiated it and owns its own navigation.
func (c *Client) Logout() {
	if c == nil {
		return
	}
	c.sessions.Logout()
	c.metrics.Inc(MetricLogout)
}

// Health checks backend liveness. Unauthenticated.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, apiCall{method: http.MethodGet, path: "/health"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MetricsSnapshot returns a point-in-time copy of the client's counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// SignalsDropped reports how many bus events were discarded under
// backpressure.
func (c *Client) SignalsDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.bus.Dropped()
}

// Close stops the signal dispatch goroutine after draining queued events.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.bus.Close()
}

// do issues one call and maps its outcome. The bearer token is snapshot at
// entry: a logout racing this call does not alter its headers, only the next
// call's. Holds no locks; concurrent calls from multiple goroutines complete
// in whatever order the network decides.
func (c *Client) do(ctx context.Context, call apiCall, out any) error {
	if c == nil || c.httpClient == nil {
		return ErrClientNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := c.newRequest(ctx, call)
	if err != nil {
		return newAPIError(0, fmt.Sprintf("%s: %v", msgRequestFailed, err), KindUnknown)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Inc(MetricTransportError)
		return newAPIError(0, fmt.Sprintf("%s: %v", msgRequestFailed, err), KindUnknown)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.Inc(MetricTransportError)
		return newAPIError(0, fmt.Sprintf("%s: %v", msgRequestFailed, err), KindUnknown)
	}
	c.metrics.Observe(MetricRequestLatency, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleExpiry(ctx)
		c.metrics.Inc(MetricRequestFailure)
		return newAPIError(http.StatusUnauthorized, msgSessionExpired, KindAuthExpired)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		c.metrics.Inc(MetricValidationRejected)
		c.metrics.Inc(MetricRequestFailure)
		if typ := req.URL.Query().Get("type"); typ != "" {
			return newAPIError(http.StatusUnprocessableEntity,
				fmt.Sprintf(msgTypeUnavailable, typ), KindValidationRejected)
		}
		return newAPIError(http.StatusUnprocessableEntity, msgValidationVague, KindValidationRejected)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.Inc(MetricRequestFailure)
		return failureFromBody(resp.StatusCode, body, msgRequestFailed)
	}

	// 204 carries no body and no body is decoded for it.
	if resp.StatusCode == http.StatusNoContent || out == nil {
		c.metrics.Inc(MetricRequestSuccess)
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.Inc(MetricRequestFailure)
		return newAPIError(resp.StatusCode, msgRequestFailed, KindUnknown)
	}
	c.metrics.Inc(MetricRequestSuccess)
	return nil
}

func (c *Client) newRequest(ctx context.Context, call apiCall) (*http.Request, error) {
	reqURL := c.baseURL + call.path
	if len(call.query) > 0 {
		reqURL += "?" + call.query.Encode()
	}

	var (
		payload     io.Reader
		contentType string
	)
	switch {
	case call.form != nil:
		payload = strings.NewReader(call.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case call.body != nil:
		data, err := json.Marshal(call.body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		payload = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, call.method, reqURL, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.setHeaders(req, contentType, call.form == nil)
	return req, nil
}

// setHeaders attaches the standing header set. The bearer token is resolved
// from the session store here, at call time, so a token set after
// construction is always honored; attachBearer is false only for login.
func (c *Client) setHeaders(req *http.Request, contentType string, attachBearer bool) {
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.config.Gateway.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.Gateway.UserAgent)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if attachBearer {
		if tok := c.sessions.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
}

// handleExpiry performs the 401 side effect at most once per cooldown
// window: clear the persisted token and broadcast session-expired. The latch
// suppresses only the side effect — the per-call 401 failure is returned to
// every caller regardless.
func (c *Client) handleExpiry(ctx context.Context) {
	c.metrics.Inc(MetricAuthExpired)

	if !c.latch.TryAcquire() {
		c.metrics.Inc(MetricExpirySuppressed)
		return
	}
	c.metrics.Inc(MetricExpirySignaled)

	// Best-effort: the session store's own logout repeats the clear, so a
	// failure here only widens the window in which a stale token persists.
	_ = c.tokens.Clear(context.WithoutCancel(ctx))

	c.bus.Emit(ctx, signal.Event{
		Type:    signal.TypeSessionExpired,
		Message: c.config.Expiry.Notice,
	})
}
