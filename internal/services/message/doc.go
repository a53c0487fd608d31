// Package message sends and lists encrypted room messages.
//
// Sending opens the room key, seals the text into a versioned envelope and
// submits it. Listing opens the room key once, fetches the envelopes and
// decrypts each one; a message that fails to decrypt is shown as a
// placeholder and never aborts the rest of the list.
package message
