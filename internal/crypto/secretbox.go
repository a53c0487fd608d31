package crypto

import "golang.org/x/crypto/nacl/secretbox"

const (
	KeySize   = 32
	NonceSize = 24
	// SymmetricOverhead is the Poly1305 tag appended by SymmetricEncrypt.
	SymmetricOverhead = secretbox.Overhead
)

// SymmetricEncrypt seals plaintext under key and nonce. The caller owns nonce
// uniqueness.
func SymmetricEncrypt(plaintext []byte, key *[KeySize]byte, nonce *[NonceSize]byte) []byte {
	return secretbox.Seal(nil, plaintext, nonce, key)
}

// SymmetricDecrypt opens ciphertext produced by SymmetricEncrypt.
func SymmetricDecrypt(ciphertext []byte, key *[KeySize]byte, nonce *[NonceSize]byte) ([]byte, bool) {
	if len(ciphertext) < SymmetricOverhead {
		return nil, false
	}
	return secretbox.Open(nil, ciphertext, nonce, key)
}
