package crypto

import (
	"crypto/sha512"

	"golang.org/x/crypto/curve25519"

	"suichat/internal/domain"
	"suichat/internal/util/memzero"
)

// KeypairFromSeed deterministically derives an X25519 keypair from seed.
// The secret key is the first half of SHA-512(seed), the same construction
// as sodium's seed keypair, so equal seeds always give equal keypairs.
func KeypairFromSeed(seed [32]byte) domain.Keypair {
	digest := sha512.Sum512(seed[:])
	defer memzero.Zero(digest[:])

	var kp domain.Keypair
	copy(kp.SecretKey[:], digest[:32])
	pub, err := PublicFromSecret(kp.SecretKey)
	if err != nil {
		// X25519 with the base point only fails for an all-zero output,
		// which no scalar produces.
		panic(err)
	}
	kp.PublicKey = pub
	return kp
}

// PublicFromSecret computes the base-point multiple of secret.
func PublicFromSecret(secret domain.X25519Private) (domain.X25519Public, error) {
	var pub domain.X25519Public
	out, err := curve25519.X25519(secret.Slice(), curve25519.Basepoint)
	if err != nil {
		return pub, err
	}
	copy(pub[:], out)
	return pub, nil
}
