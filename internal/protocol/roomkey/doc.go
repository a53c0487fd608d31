// Package roomkey distributes a room's symmetric key to its members.
//
// A room key is 32 random bytes created once by the room creator. It only
// ever leaves the client wrapped: sealed to one member's X25519 public key
// with an anonymous sealed box. Each record is RecordSize bytes,
// [ephemeral_pk:32][ciphertext||tag:48], and the ledger stores one record
// per (room, member).
//
// Inviting a member is unwrap-then-rewrap: an existing member opens their own
// record and seals the same key to the invitee. Nothing here performs network
// access.
package roomkey
