package derive

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/util/memzero"
)

// SignMessage is the fixed message a wallet signs to derive its encryption key.
const SignMessage = "sui-chat:derive-encryption-key:v1"

const seedSize = 32

var (
	// ErrEmptySignature is returned for a zero-length signature.
	ErrEmptySignature = errors.New("signature is empty")
	// ErrMissingClaim is returned when an identity claim or the salt is empty.
	ErrMissingClaim = errors.New("identity claim missing")
	// ErrUnknownInput is returned for a nil or unsupported derivation input.
	ErrUnknownInput = errors.New("unsupported derivation input")
)

// Derive is the single entry point for both strategies.
func Derive(in domain.DerivationInput) (domain.Keypair, error) {
	switch v := in.(type) {
	case domain.SignatureInput:
		return FromSignature(v.Signature)
	case *domain.SignatureInput:
		if v == nil {
			return domain.Keypair{}, ErrUnknownInput
		}
		return FromSignature(v.Signature)
	case domain.ClaimsInput:
		return FromClaims(v)
	case *domain.ClaimsInput:
		if v == nil {
			return domain.Keypair{}, ErrUnknownInput
		}
		return FromClaims(*v)
	default:
		return domain.Keypair{}, ErrUnknownInput
	}
}

// FromSignature derives the keypair from a raw wallet signature over SignMessage.
func FromSignature(signature []byte) (domain.Keypair, error) {
	seed, err := SignatureSeed(signature)
	if err != nil {
		return domain.Keypair{}, err
	}
	defer memzero.Zero(seed[:])
	return crypto.KeypairFromSeed(seed), nil
}

// FromClaims derives the keypair from federated identity claims.
func FromClaims(c domain.ClaimsInput) (domain.Keypair, error) {
	seed, err := ClaimsSeed(c)
	if err != nil {
		return domain.Keypair{}, err
	}
	defer memzero.Zero(seed[:])
	return crypto.KeypairFromSeed(seed), nil
}

// SignatureSeed is BLAKE2b-256 of the signature.
func SignatureSeed(signature []byte) ([seedSize]byte, error) {
	if len(signature) == 0 {
		return [seedSize]byte{}, ErrEmptySignature
	}
	return blake2b.Sum256(signature), nil
}

// ClaimsSeed is HKDF-SHA256(ikm=salt, salt=issuer:audience, info=subject).
func ClaimsSeed(c domain.ClaimsInput) ([seedSize]byte, error) {
	var seed [seedSize]byte
	switch {
	case c.Subject == "":
		return seed, fmt.Errorf("%w: subject", ErrMissingClaim)
	case c.Issuer == "":
		return seed, fmt.Errorf("%w: issuer", ErrMissingClaim)
	case c.Audience == "":
		return seed, fmt.Errorf("%w: audience", ErrMissingClaim)
	case c.Salt == "":
		return seed, fmt.Errorf("%w: salt", ErrMissingClaim)
	}

	r := hkdf.New(
		sha256.New,
		[]byte(c.Salt),
		[]byte(c.Issuer+":"+c.Audience),
		[]byte(c.Subject),
	)
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return seed, fmt.Errorf("hkdf: %w", err)
	}
	return seed, nil
}
