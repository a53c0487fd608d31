// Package idp talks to the federated identity side of a login: it reads the
// stable claims out of an id token and fetches the per-user salt.
//
// The token signature is not verified here; the salt service does that. The
// client only rejects tokens that are structurally broken or already expired,
// so a stale token fails fast without a round trip.
//
// Network failures, timeouts and 5xx responses wrap domain.ErrUnavailable.
package idp
