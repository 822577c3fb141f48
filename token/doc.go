// Package token provides client-side introspection of the bearer tokens the
// storefront backend issues. The backend signs its JWTs with keys the client
// never holds, so this package deliberately parses WITHOUT verification: the
// claims are for display and diagnostics only, never for authorization
// decisions — an expired-looking token is still sent, and expiry is
// discovered lazily from the backend's 401.
package token
