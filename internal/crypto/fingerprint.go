package crypto

import (
	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"

	"suichat/internal/domain"
)

// Fingerprint returns a short base58 fingerprint of a public key.
//
// It hashes with BLAKE3 and truncates to 10 bytes.
func Fingerprint(pub []byte) domain.Fingerprint {
	sum := blake3.Sum256(pub)
	return domain.Fingerprint(base58.Encode(sum[:10]))
}
