package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"

	"suichat/internal/domain"
)

// SealedOverhead is the ephemeral public key plus the authentication tag
// added by SealedEncrypt.
const SealedOverhead = box.AnonymousOverhead

// SealedEncrypt encrypts plaintext to recipient without a sender keypair.
// The output is [ephemeral_pk:32][ciphertext||tag] and is exactly
// SealedOverhead bytes longer than plaintext.
func SealedEncrypt(plaintext []byte, recipient domain.X25519Public) ([]byte, error) {
	pub := [32]byte(recipient)
	return box.SealAnonymous(nil, plaintext, &pub, rand.Reader)
}

// SealedDecrypt opens a sealed box with the recipient secret key. The public
// key is recomputed from secret. ok is false if the box was not sealed to
// this key, was modified, or is too short.
func SealedDecrypt(ciphertext []byte, secret domain.X25519Private) (plaintext []byte, ok bool) {
	if len(ciphertext) < SealedOverhead {
		return nil, false
	}
	pub, err := PublicFromSecret(secret)
	if err != nil {
		return nil, false
	}
	pk := [32]byte(pub)
	sk := [32]byte(secret)
	return box.OpenAnonymous(nil, ciphertext, &pk, &sk)
}
