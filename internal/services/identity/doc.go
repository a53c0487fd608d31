// Package identity resolves how the user authenticated into their member
// encryption keypair, and publishes its public half to the ledger.
//
// A KeySource is either a WalletSource, which signs the fixed derivation
// message, or a ClaimsSource, which reads the id token's stable claims and
// fetches the per-user salt. Derivation is repeated on every use; the keypair
// is never stored.
package identity
