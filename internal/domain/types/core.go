package types

import "strings"

// Address identifies a member on the ledger (0x-prefixed hex).
type Address string

// String returns the string form of the address.
func (a Address) String() string { return string(a) }

// Normalize returns the canonical form: surrounding space removed and hex
// lower-cased. Addresses are compared and stored only in this form.
func (a Address) Normalize() Address {
	return Address(strings.ToLower(strings.TrimSpace(string(a))))
}

// RoomID identifies an encrypted room on the ledger.
type RoomID string

// String returns the string form of the room identifier.
func (id RoomID) String() string { return string(id) }

// MessageID identifies a single message within a room.
type MessageID string

// String returns the string form of the message identifier.
func (id MessageID) String() string { return string(id) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// AuthMethod names how a user authenticated, and therefore how their
// encryption keys are derived.
type AuthMethod string

const (
	AuthWallet AuthMethod = "wallet"
	AuthClaims AuthMethod = "zklogin"
)
