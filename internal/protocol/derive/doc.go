// Package derive turns an authentication artifact into the member encryption
// keypair.
//
// # Strategies
//
// Signature: the wallet signs SignMessage once; the raw signature is hashed
// with BLAKE2b-256 and the digest seeds the keypair.
//
// Claims: for federated logins the seed is HKDF-SHA256 with the per-user salt
// as input keying material, "issuer:audience" as the HKDF salt and the subject
// as info. Session-scoped signing keys of a federated login are not stable
// across sessions and are never used.
//
// Both strategies end in crypto.KeypairFromSeed, so the same input always
// yields the same keypair on every device. SignMessage, the hash choice and
// the HKDF parameters are protocol constants: changing any of them changes
// every derived key.
package derive
