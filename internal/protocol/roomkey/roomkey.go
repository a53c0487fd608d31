package roomkey

import (
	"errors"
	"fmt"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/util/memzero"
)

const (
	// KeySize is the length of a room key.
	KeySize = 32
	// RecordSize is the length of a wrapped room key.
	RecordSize = KeySize + crypto.SealedOverhead
)

// ErrInvalidPublicKey is returned when published key bytes are not exactly
// KeySize long.
var ErrInvalidPublicKey = errors.New("invalid public key")

// NewRoomKey returns a fresh random room key.
func NewRoomKey() (domain.RoomKey, error) {
	var key domain.RoomKey
	b, err := crypto.RandomBytes(KeySize)
	if err != nil {
		return key, fmt.Errorf("room key: %w", err)
	}
	copy(key[:], b)
	memzero.Zero(b)
	return key, nil
}

// WrapForMember seals key to member.
func WrapForMember(key domain.RoomKey, member domain.X25519Public) (domain.WrappedKeyRecord, error) {
	ct, err := crypto.SealedEncrypt(key[:], member)
	if err != nil {
		return nil, fmt.Errorf("wrap room key: %w", err)
	}
	return domain.WrappedKeyRecord(ct), nil
}

// UnwrapAsMember opens a record with the member secret key. ok is false if
// the record was sealed to another key, was modified, or does not hold a
// KeySize key.
func UnwrapAsMember(record domain.WrappedKeyRecord, secret domain.X25519Private) (key domain.RoomKey, ok bool) {
	if len(record) != RecordSize {
		return key, false
	}
	pt, ok := crypto.SealedDecrypt(record, secret)
	if !ok || len(pt) != KeySize {
		return key, false
	}
	copy(key[:], pt)
	memzero.Zero(pt)
	return key, true
}

// ParsePublicKey validates published key bytes. Keys are never padded or
// truncated.
func ParsePublicKey(b []byte) (domain.X25519Public, error) {
	var pub domain.X25519Public
	if len(b) != KeySize {
		return pub, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKey, len(b), KeySize)
	}
	copy(pub[:], b)
	return pub, nil
}
