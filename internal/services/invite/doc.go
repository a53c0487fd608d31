// Package invite re-wraps a room key for a new member.
//
// The chain is: derive the inviter's keypair, fetch the invitee's public key
// and the inviter's own wrapped record (concurrently), validate the key,
// unwrap the room key, wrap it for the invitee. Each step's failure is
// reported with the precondition that failed. The returned record is only
// produced by a fully successful chain; submitting it to the ledger is the
// caller's job.
package invite
