// Package ledger provides an HTTP implementation of the domain.LedgerClient
// interface used by suichat.
//
// The ledger is the shared, public store of member public keys, rooms,
// wrapped room key records and encrypted messages. Everything it holds is
// public key material or ciphertext.
//
// Supported operations include:
//   - Publishing and fetching member public keys.
//   - Creating rooms together with the creator's wrapped key record.
//   - Adding members with their wrapped key record.
//   - Submitting and listing encrypted messages.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Binary fields travel as standard base64 and are decoded strictly.
// A 404 wraps domain.ErrNotFound; network failures, timeouts, 429 and 5xx
// wrap domain.ErrUnavailable.
package ledger
