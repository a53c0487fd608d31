package derive_test

import (
	"crypto/sha256"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/protocol/derive"
)

func sequentialSignature() []byte {
	sig := make([]byte, 32)
	for i := range sig {
		sig[i] = byte(i + 1)
	}
	return sig
}

func baseClaims() domain.ClaimsInput {
	return domain.ClaimsInput{
		Subject:  "u1",
		Issuer:   "https://issuer.example",
		Audience: "client123",
		Salt:     "abc123",
	}
}

func TestFromSignature_SameBytesSamePublicKey(t *testing.T) {
	first, err := derive.FromSignature(sequentialSignature())
	require.NoError(t, err)
	second, err := derive.FromSignature(sequentialSignature())
	require.NoError(t, err)

	require.Equal(t, crypto.B64(first.PublicKey[:]), crypto.B64(second.PublicKey[:]))
	require.Equal(t, first.SecretKey, second.SecretKey)
}

func TestFromSignature_SeedIsBlake2b256(t *testing.T) {
	sig := sequentialSignature()
	got, err := derive.FromSignature(sig)
	require.NoError(t, err)

	want := crypto.KeypairFromSeed(blake2b.Sum256(sig))
	require.Equal(t, want, got)
}

func TestFromSignature_DifferentSignatureDifferentKey(t *testing.T) {
	a, err := derive.FromSignature(sequentialSignature())
	require.NoError(t, err)

	other := sequentialSignature()
	other[31] ^= 0xFF
	b, err := derive.FromSignature(other)
	require.NoError(t, err)
	require.NotEqual(t, a.PublicKey, b.PublicKey)
}

func TestFromSignature_Empty(t *testing.T) {
	_, err := derive.FromSignature(nil)
	require.ErrorIs(t, err, derive.ErrEmptySignature)
}

func TestFromClaims_Deterministic(t *testing.T) {
	a, err := derive.FromClaims(baseClaims())
	require.NoError(t, err)
	b, err := derive.FromClaims(baseClaims())
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFromClaims_SaltChangeChangesKey(t *testing.T) {
	k1, err := derive.FromClaims(baseClaims())
	require.NoError(t, err)

	changed := baseClaims()
	changed.Salt = "xyz999"
	k2, err := derive.FromClaims(changed)
	require.NoError(t, err)

	require.NotEqual(t, k1.PublicKey, k2.PublicKey)
}

func TestFromClaims_EachFieldMatters(t *testing.T) {
	base, err := derive.FromClaims(baseClaims())
	require.NoError(t, err)

	mutations := map[string]func(*domain.ClaimsInput){
		"subject":  func(c *domain.ClaimsInput) { c.Subject = "u2" },
		"issuer":   func(c *domain.ClaimsInput) { c.Issuer = "https://other.example" },
		"audience": func(c *domain.ClaimsInput) { c.Audience = "client456" },
		"salt":     func(c *domain.ClaimsInput) { c.Salt = "abc124" },
	}
	seen := map[domain.X25519Public]string{base.PublicKey: "base"}
	for name, mutate := range mutations {
		c := baseClaims()
		mutate(&c)
		kp, err := derive.FromClaims(c)
		require.NoError(t, err, name)
		prev, dup := seen[kp.PublicKey]
		require.Falsef(t, dup, "%s collides with %s", name, prev)
		seen[kp.PublicKey] = name
	}
}

func TestClaimsSeed_MatchesHKDFParameters(t *testing.T) {
	c := baseClaims()
	got, err := derive.ClaimsSeed(c)
	require.NoError(t, err)

	r := hkdf.New(sha256.New, []byte("abc123"), []byte("https://issuer.example:client123"), []byte("u1"))
	want := make([]byte, 32)
	_, err = io.ReadFull(r, want)
	require.NoError(t, err)
	require.Equal(t, want, got[:])
}

func TestFromClaims_MissingClaimAborts(t *testing.T) {
	for _, field := range []string{"subject", "issuer", "audience", "salt"} {
		c := baseClaims()
		switch field {
		case "subject":
			c.Subject = ""
		case "issuer":
			c.Issuer = ""
		case "audience":
			c.Audience = ""
		case "salt":
			c.Salt = ""
		}
		_, err := derive.FromClaims(c)
		require.ErrorIs(t, err, derive.ErrMissingClaim)
		require.Contains(t, err.Error(), field)
	}
}

func TestDerive_DispatchesOnInput(t *testing.T) {
	sig := sequentialSignature()
	fromSig, err := derive.Derive(domain.SignatureInput{Signature: sig})
	require.NoError(t, err)
	direct, err := derive.FromSignature(sig)
	require.NoError(t, err)
	require.Equal(t, direct, fromSig)

	c := baseClaims()
	fromClaims, err := derive.Derive(&c)
	require.NoError(t, err)
	directClaims, err := derive.FromClaims(c)
	require.NoError(t, err)
	require.Equal(t, directClaims, fromClaims)

	_, err = derive.Derive(nil)
	require.ErrorIs(t, err, derive.ErrUnknownInput)

	var nilClaims *domain.ClaimsInput
	_, err = derive.Derive(nilClaims)
	require.ErrorIs(t, err, derive.ErrUnknownInput)
}

// Fixed vectors: a changed hash, HKDF argument order or seed keypair step
// changes every member's key, so these must never move.
func TestFromSignature_KnownAnswer(t *testing.T) {
	kp, err := derive.FromSignature(sequentialSignature())
	require.NoError(t, err)
	require.Equal(t, "zMds6c9QMMlnw2Fr0YAyQmiAtfKEKBACjHgmNv9PsVI=", crypto.B64(kp.PublicKey[:]))
	require.Equal(t, "ipugep47U9Z63sX/MooadOI/nf8hsF5ltn9QCKN7bKM=", crypto.B64(kp.SecretKey[:]))
}

func TestFromClaims_KnownAnswer(t *testing.T) {
	kp, err := derive.FromClaims(baseClaims())
	require.NoError(t, err)
	require.Equal(t, "Y2d/930cCaVSVrCaAgh/kQeox1VDuPVUVKdNYwlYWDg=", crypto.B64(kp.PublicKey[:]))
	require.Equal(t, "GE3xDxNAVqZ81LTXON6O8dICwEAlnqHFGXGYEKbjKRk=", crypto.B64(kp.SecretKey[:]))
}
