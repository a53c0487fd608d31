// Package ledgerserver is the development stand-in for the ledger: a small
// HTTP service over SQLite that serves the same contract internal/ledger
// speaks.
//
// HTTP API
//
//	PUT  /members/{address}/public-key   { "public_key": b64 }
//	GET  /members/{address}/public-key
//	POST /rooms                          { "name", "creator", "record": b64 }
//	GET  /rooms/{id}
//	GET  /rooms/{id}/keys/{address}
//	POST /rooms/{id}/members             { "inviter", "member", "record": b64 }
//	POST /rooms/{id}/messages            { "sender", "envelope" }
//	GET  /rooms/{id}/messages?limit=N
//	GET  /metrics
//
// Behaviour
//
//   - A room and its creator's record are written in one transaction, so a
//     member is never listed without a record.
//   - Only an existing member may add a member or post a message (403).
//   - Records are immutable: re-adding a member is a conflict (409).
//   - Public keys must be 32 bytes and records 80 bytes, both as canonical
//     standard base64.
//   - Requests are rate limited per remote host (429).
//
// The server never sees plaintext or private keys; it only stores public keys
// and ciphertext.
package ledgerserver
