package store

import (
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"suichat/internal/crypto"
)

// keystoreFormatVersion is the encrypted blob format written to disk.
const keystoreFormatVersion = 1

const keystoreSaltSize = 16

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// keystore has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keystore")

// ErrKDFParams is returned when a keystore asks for scrypt costs outside the
// range this package writes.
var ErrKDFParams = errors.New("keystore kdf parameters out of range")

// kdfParams are the scrypt cost parameters stored alongside the ciphertext.
type kdfParams struct {
	N int `json:"scrypt_N"`
	R int `json:"scrypt_r"`
	P int `json:"scrypt_p"`
}

func defaultKDF() kdfParams { return kdfParams{N: 1 << 15, R: 8, P: 1} }

// check bounds the memory (128*N*r bytes) and work a stored blob can demand.
func (p kdfParams) check() error {
	limit := defaultKDF()
	switch {
	case p.N < 2 || p.N&(p.N-1) != 0 || p.N > limit.N:
		return fmt.Errorf("%w: scrypt_N=%d", ErrKDFParams, p.N)
	case p.R < 1 || p.R > limit.R:
		return fmt.Errorf("%w: scrypt_r=%d", ErrKDFParams, p.R)
	case p.P < 1 || p.P > limit.P:
		return fmt.Errorf("%w: scrypt_p=%d", ErrKDFParams, p.P)
	}
	return nil
}

// keystore is the on-disk JSON structure.
type keystore struct {
	V      int       `json:"v"`
	Kind   string    `json:"kind"`
	Salt   []byte    `json:"salt"`
	KDF    kdfParams `json:"kdf"`
	Cipher []byte    `json:"cipher"`
}

func (k keystore) aad() []byte {
	return append([]byte(k.Kind+":"), k.Salt...)
}

// seal encrypts raw under a key derived from passphrase. kind is bound into
// the AEAD so a blob cannot be replayed as another kind of secret.
func seal(kind, passphrase string, raw []byte, params kdfParams) ([]byte, error) {
	salt, err := crypto.RandomBytes(keystoreSaltSize)
	if err != nil {
		return nil, err
	}
	aead, err := keystoreAEAD(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	ks := keystore{V: keystoreFormatVersion, Kind: kind, Salt: salt, KDF: params}
	// zero nonce: the key is unique per salt
	var nonce [chacha20poly1305.NonceSize]byte
	ks.Cipher = aead.Seal(nil, nonce[:], raw, ks.aad())
	return json.Marshal(ks)
}

// open decrypts a blob written by seal.
func open(kind, passphrase string, b []byte) ([]byte, error) {
	var ks keystore
	if err := json.Unmarshal(b, &ks); err != nil {
		return nil, fmt.Errorf("parse keystore: %w", err)
	}
	if ks.V != keystoreFormatVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", ks.V)
	}
	if ks.Kind != kind {
		return nil, fmt.Errorf("keystore holds %q, want %q", ks.Kind, kind)
	}
	if err := ks.KDF.check(); err != nil {
		return nil, err
	}
	aead, err := keystoreAEAD(passphrase, ks.Salt, ks.KDF)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], ks.Cipher, ks.aad())
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func keystoreAEAD(passphrase string, salt []byte, p kdfParams) (cipher.AEAD, error) {
	if len(salt) != keystoreSaltSize {
		return nil, errors.New("keystore salt has wrong length")
	}
	key, err := scrypt.Key([]byte(passphrase), salt, p.N, p.R, p.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("scrypt: %w", err)
	}
	return chacha20poly1305.New(key)
}
