// Package main runs the development ledger used by suichat during development
// and tests. It stores published encryption keys, rooms, wrapped room keys and
// encrypted messages in SQLite.
//
// HTTP API
//
//	PUT /members/{address}/public-key { "public_key": b64 }
//	    Publish or replace the 32-byte encryption public key of {address}.
//
//	GET /members/{address}/public-key
//	    Return the published key, or 404.
//
//	POST /rooms { "name", "creator", "record": b64 }
//	    Create a room; the creator becomes its first member with the given
//	    80-byte wrapped key record. The server assigns id and created_utc.
//
//	GET /rooms/{id}
//	    Return room metadata.
//
//	GET /rooms/{id}/keys/{address}
//	    Return the wrapped key record of {address}, or 404.
//
//	POST /rooms/{id}/members { "inviter", "member", "record": b64 }
//	    Add a member. The inviter must already be a member (403 otherwise);
//	    an existing member gives 409.
//
//	POST /rooms/{id}/messages { "sender", "envelope" }
//	    Append a message from a member. The server assigns id and timestamp.
//
//	GET /rooms/{id}/messages?limit=N
//	    Return the latest N messages, oldest first (default 50, max 500).
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - Responses are JSON. Non-2xx statuses carry {"error": "..."}.
//   - Requests are rate limited per remote host; excess requests get 429.
//   - An access log records method, route, status and duration.
//   - The default listen address is :8080 and the default database is
//     ledger.db in the working directory; ":memory:" keeps state in memory.
//
// The ledger never sees plaintext or secret keys; it only stores public keys
// and ciphertext.
package main
