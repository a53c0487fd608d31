// Package wallet is a local development wallet.
//
// It holds one Ed25519 key whose seed is stored passphrase-encrypted via a
// domain.WalletStore. Addresses and personal-message signatures follow the
// Sui conventions:
//
//	address   = 0x || hex(BLAKE2b-256(0x00 || pubkey))
//	digest    = BLAKE2b-256(intent(3,0,0) || uleb128(len(msg)) || msg)
//	signature = 0x00 || ed25519(digest) || pubkey
//
// Ed25519 signatures are deterministic, so signing the key-derivation message
// yields the same bytes on every device holding the wallet.
package wallet
