// Package room creates encrypted rooms and recovers their keys.
//
// Creating a room generates the room key, wraps it for the creator and
// submits room and record together. Opening a room derives the member's
// keypair, finds their wrapped record (local cache first, then the ledger)
// and unwraps it. Only records are cached; room keys live in memory for the
// duration of one operation.
package room
