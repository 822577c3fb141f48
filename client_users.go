package goKiosk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// Register creates a new account. The password is checked against the
// configured policy before the request leaves the process; policy failures
// come back as the password package's sentinel errors, not an [*APIError].
func (c *Client) Register(ctx context.Context, reg Registration) (*UserProfile, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	if err := c.config.Password.Validate(reg.Password); err != nil {
		return nil, err
	}

	var out UserProfile
	err := c.do(ctx, apiCall{
		method: http.MethodPost,
		path:   "/api/users/register",
		body:   reg,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token. The request is
// form-encoded, carries no bearer header, and its failures map only through
// the response body's detail field: a rejected login is a plain failure, not
// a session expiry, so it never trips the expiry broadcast.
//
// On success the token is stored and persisted; the caller typically follows
// with [Client.Me] to resolve the profile.
func (c *Client) Login(ctx context.Context, login, password string) (Token, error) {
	if c == nil || c.httpClient == nil {
		return Token{}, ErrClientNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	form := url.Values{}
	form.Set("login", login)
	form.Set("password", password)

	req, err := c.newRequest(ctx, apiCall{
		method: http.MethodPost,
		path:   "/api/users/login",
		form:   form,
	})
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return Token{}, newAPIError(0, msgLoginFailed, KindUnknown)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Inc(MetricTransportError)
		c.metrics.Inc(MetricLoginFailure)
		return Token{}, newAPIError(0, msgLoginFailed, KindUnknown)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return Token{}, newAPIError(0, msgLoginFailed, KindUnknown)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.Inc(MetricLoginFailure)
		if detail, ok := detailMessage(body); ok {
			return Token{}, newAPIError(resp.StatusCode, detail, KindTransport)
		}
		return Token{}, newAPIError(resp.StatusCode, msgLoginFailed, KindUnknown)
	}

	var tok Token
	if err := json.Unmarshal(body, &tok); err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return Token{}, newAPIError(resp.StatusCode, msgLoginFailed, KindUnknown)
	}

	c.sessions.Login(tok.AccessToken)
	c.metrics.Inc(MetricLoginSuccess)
	return tok, nil
}

// Me fetches the authenticated profile and records it in the session store,
// promoting an authenticating session to active.
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	if err := c.do(ctx, apiCall{method: http.MethodGet, path: "/api/users/me"}, &out); err != nil {
		return nil, err
	}
	c.sessions.SetUser(&out)
	c.metrics.Inc(MetricProfileResolved)
	return &out, nil
}

// UpdateProfile patches the authenticated profile. Nil fields are omitted
// from the request and left untouched server-side. The refreshed profile is
// written back to the session store.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*UserProfile, error) {
	var out UserProfile
	err := c.do(ctx, apiCall{
		method: http.MethodPatch,
		path:   "/api/users/me",
		body:   upd,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.sessions.SetUser(&out)
	return &out, nil
}

// UpdatePassword changes the account password. The new password is checked
// against the configured policy before the request is issued.
func (c *Client) UpdatePassword(ctx context.Context, change PasswordChange) (*Message, error) {
	if c == nil {
		return nil, ErrClientNotReady
	}
	if err := c.config.Password.Validate(change.NewPassword); err != nil {
		return nil, err
	}

	var out Message
	err := c.do(ctx, apiCall{
		method: http.MethodPost,
		path:   "/api/users/me/password",
		body:   change,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
