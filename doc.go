// Package goKiosk provides the client gateway for a publications subscription
// storefront: a single chokepoint through which every API call passes, plus
// the session lifecycle it cooperates with (bearer token, lazily fetched
// profile, expiry handling).
//
// The package is designed for concurrent UI workloads: Client methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build], hold no per-call locks, and give no ordering guarantee
// across distinct calls.
//
// # Architecture boundaries
//
// goKiosk is the public surface. It exposes [Client], [Builder], [Config],
// the typed [APIError], and the wire value types. Session state lives in the
// session subpackage; cross-cutting events travel through the signal
// subpackage. The gateway reaches routing only through the bus — it emits
// session-expired, the session store reacts and re-broadcasts navigate-home,
// and the shell observes the bus without knowing authentication exists.
//
// # What this package must NOT do
//
//   - Surface a raw transport error to a caller; every failure is an
//     [*APIError].
//   - Retry, cache responses, or reorder calls on the caller's behalf.
//   - Touch navigation, rendering, or any UI state directly.
package goKiosk
