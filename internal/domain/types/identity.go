package types

import "time"

// SaltResponse is returned by the federated identity salt service.
type SaltResponse struct {
	Salt    string  `json:"salt"`
	Address Address `json:"address"`
}

// IDTokenClaims are the stable claims read from a federated id token.
type IDTokenClaims struct {
	Subject   string
	Issuer    string
	Audience  string
	ExpiresAt time.Time
}
