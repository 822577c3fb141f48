package goKiosk

import "errors"

var (
	// ErrClientNotReady is returned when a Client method is called on a nil
	// or unbuilt client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrBaseURLRequired is returned by Build when no base URL was set.
	ErrBaseURLRequired = errors.New("base URL is required")
	// ErrBuilderUsed is returned by Build on a builder that already built.
	ErrBuilderUsed = errors.New("builder already used")
)

// Fallback failure messages, chosen to match the backend contract: callers
// render these verbatim.
const (
	msgSessionExpired   = "Your session has expired. Please log in again."
	msgExpiryNotice     = "Your session has expired. Automatically logging out..."
	msgRequestFailed    = "Request failed"
	msgLoginFailed      = "Login failed"
	msgValidationVague  = "Validation rejected; inspect request parameters for details."
	msgTypeUnavailable  = `Type %q is not available.`
)
