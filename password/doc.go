// Package password validates candidate passwords against the storefront
// backend's published policy before a registration or password-change request
// leaves the client. Local validation saves a round-trip for the common
// mistakes; the backend remains the authority and may still reject.
//
// The client never hashes: plaintext travels to the backend over TLS and
// hashing is a server concern.
package password
