// Package signal provides the in-process publish/subscribe channel that
// decouples the request gateway from session and navigation concerns.
//
// The event set is deliberately closed: [TypeSessionExpired] is emitted by the
// gateway when a 401 side effect fires, and [TypeNavigateHome] is re-broadcast
// by the session store after it has reacted to the expiry. Shell code that
// owns navigation observes the bus through a [Sink] and never needs to know
// about authentication internals.
//
// # Architecture boundaries
//
// This package owns the [Bus] (async dispatch) and the [Sink] implementations.
// It does NOT decide when events fire — the gateway's expiry latch and the
// session store own that policy.
//
// # What this package must NOT do
//
//   - Import goKiosk or session (no upward imports).
//   - Perform network I/O or touch persisted tokens.
//   - Grow an open-ended event vocabulary; new types require a contract change.
package signal
