package types

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 secret key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Private is an Ed25519 signing private key (seed followed by public key).
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// Keypair is the member encryption keypair. PublicKey is always the base-point
// multiple of SecretKey; it is held in memory only and never persisted.
type Keypair struct {
	PublicKey X25519Public
	SecretKey X25519Private
}

// RoomKey is the symmetric key shared by all members of one encrypted room.
type RoomKey [32]byte

// WrappedKeyRecord is a RoomKey sealed to one member's public key:
// [ephemeral_pk:32][ciphertext||tag:48].
type WrappedKeyRecord []byte
