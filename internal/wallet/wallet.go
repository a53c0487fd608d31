package wallet

import (
	"context"
	"encoding/hex"
	"fmt"
	"unicode"

	"golang.org/x/crypto/blake2b"

	"suichat/internal/crypto"
	"suichat/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	// ed25519Flag is the signature scheme flag for Ed25519 keys.
	ed25519Flag byte = 0x00

	// SignatureSize is flag, 64-byte signature and 32-byte public key.
	SignatureSize = 1 + 64 + 32
)

// personalMessageIntent is intent scope PersonalMessage, version 0, app Sui.
var personalMessageIntent = [3]byte{3, 0, 0}

// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
var ErrWeakPassphrase = fmt.Errorf(
	"passphrase is too weak (must be at least %d characters and include upper, lower, "+
		"number, and symbol)",
	minPassphraseLength,
)

// Wallet signs with a local Ed25519 key.
type Wallet struct {
	priv    domain.Ed25519Private
	pub     domain.Ed25519Public
	address domain.Address
}

// FromPrivate wraps an existing key.
func FromPrivate(priv domain.Ed25519Private) *Wallet {
	pub := crypto.Ed25519PublicFromPrivate(priv)
	return &Wallet{priv: priv, pub: pub, address: AddressOf(pub)}
}

// Create generates a wallet and saves it encrypted with passphrase.
func Create(store domain.WalletStore, passphrase string) (*Wallet, error) {
	if !isSecurePassphrase(passphrase) {
		return nil, ErrWeakPassphrase
	}
	priv, _, err := crypto.GenerateEd25519()
	if err != nil {
		return nil, err
	}
	if err := store.SaveWallet(passphrase, priv); err != nil {
		return nil, err
	}
	return FromPrivate(priv), nil
}

// Load decrypts the stored wallet.
func Load(store domain.WalletStore, passphrase string) (*Wallet, error) {
	priv, err := store.LoadWallet(passphrase)
	if err != nil {
		return nil, err
	}
	return FromPrivate(priv), nil
}

// Address returns the wallet's ledger address.
func (w *Wallet) Address() domain.Address { return w.address }

// PublicKey returns the Ed25519 public key.
func (w *Wallet) PublicKey() domain.Ed25519Public { return w.pub }

// SignPersonalMessage signs msg as a personal message and returns the
// serialized signature.
func (w *Wallet) SignPersonalMessage(ctx context.Context, msg []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	digest := PersonalMessageDigest(msg)
	sig := crypto.SignEd25519(w.priv, digest[:])

	out := make([]byte, 0, SignatureSize)
	out = append(out, ed25519Flag)
	out = append(out, sig...)
	out = append(out, w.pub[:]...)
	return out, nil
}

// AddressOf returns the address of an Ed25519 public key.
func AddressOf(pub domain.Ed25519Public) domain.Address {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, ed25519Flag)
	buf = append(buf, pub[:]...)
	sum := blake2b.Sum256(buf)
	return domain.Address("0x" + hex.EncodeToString(sum[:]))
}

// PersonalMessageDigest is the digest a wallet signs for msg.
func PersonalMessageDigest(msg []byte) [32]byte {
	buf := make([]byte, 0, len(personalMessageIntent)+10+len(msg))
	buf = append(buf, personalMessageIntent[:]...)
	buf = appendULEB128(buf, uint64(len(msg)))
	buf = append(buf, msg...)
	return blake2b.Sum256(buf)
}

func appendULEB128(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len([]rune(passphrase)) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

var _ domain.WalletSigner = (*Wallet)(nil)
