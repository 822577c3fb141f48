// Package session owns the process-wide authentication state for a goKiosk
// client: the current bearer token, the lazily-fetched user profile, and the
// persistence of the token across restarts.
//
// # State machine
//
// A [Store] is always in exactly one of three states: Anonymous (no token),
// Authenticating (token set, profile not yet fetched), Active (token and
// profile set). The token is the single source of truth for "authenticated";
// there is no state in which a profile is held without a token, because
// [Store.Logout] clears both in one transition and [Store.SetUser] refuses a
// profile while anonymous.
//
// # Persistence
//
// Token persistence is level-triggered: every transition re-writes the
// current value through the configured [TokenStore] (Save on a non-empty
// token, Clear on an empty one), so repeated writes of the same value are
// idempotent and a crash between transitions loses at most the latest write.
// Three stores ship with the package: in-memory, file-backed, and
// Redis-backed for shared kiosk terminals.
//
// # Architecture boundaries
//
// This package does NOT issue network calls, interpret HTTP statuses, or
// navigate. It reacts to the gateway's expiry event through [Store.Bind] and
// re-broadcasts a navigation event, keeping routing and authentication
// mutually ignorant.
package session
