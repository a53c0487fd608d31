// Package envelope encrypts room messages under the room key.
//
// Wire format, base64 (standard alphabet) as a whole:
//
//	[version:1 = 0x01][nonce:24][ciphertext||tag]
//
// The ciphertext is an XSalsa20-Poly1305 secret box of the UTF-8 message.
// Every call to EncryptMessage draws a fresh random nonce. Any other version
// byte is rejected; a future format must use a new version value.
//
// DecryptMessage never panics on ledger input. Every failure collapses to
// ErrUndecryptable so that callers render Placeholder and move on.
package envelope
