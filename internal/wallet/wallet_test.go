package wallet

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"suichat/internal/crypto"
	"suichat/internal/domain"
)

type memWalletStore struct {
	pass string
	priv domain.Ed25519Private
	set  bool
}

func (m *memWalletStore) SaveWallet(passphrase string, priv domain.Ed25519Private) error {
	m.pass, m.priv, m.set = passphrase, priv, true
	return nil
}

func (m *memWalletStore) LoadWallet(passphrase string) (domain.Ed25519Private, error) {
	if !m.set || passphrase != m.pass {
		return domain.Ed25519Private{}, context.Canceled
	}
	return m.priv, nil
}

const strong = "Correct-Horse-42"

func TestPassphrasePolicy(t *testing.T) {
	require.False(t, isSecurePassphrase("short1!A"))
	require.False(t, isSecurePassphrase("alllowercase123!"))
	require.False(t, isSecurePassphrase("NoDigitsHere!!!"))
	require.False(t, isSecurePassphrase("NoSymbols12345"))
	require.True(t, isSecurePassphrase(strong))
}

func TestCreate_RejectsWeakPassphrase(t *testing.T) {
	s := &memWalletStore{}
	_, err := Create(s, "weak")
	require.ErrorIs(t, err, ErrWeakPassphrase)
	require.False(t, s.set)
}

func TestCreateThenLoad_SameAddress(t *testing.T) {
	s := &memWalletStore{}
	w, err := Create(s, strong)
	require.NoError(t, err)

	loaded, err := Load(s, strong)
	require.NoError(t, err)
	require.Equal(t, w.Address(), loaded.Address())
}

func TestAddress_Format(t *testing.T) {
	priv, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	addr := FromPrivate(priv).Address().String()
	require.True(t, strings.HasPrefix(addr, "0x"))
	require.Len(t, addr, 66)
	require.Equal(t, strings.ToLower(addr), addr)
}

func TestSignPersonalMessage_DeterministicAndVerifiable(t *testing.T) {
	priv, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	w := FromPrivate(priv)

	msg := []byte("sui-chat:derive-encryption-key:v1")
	a, err := w.SignPersonalMessage(context.Background(), msg)
	require.NoError(t, err)
	b, err := w.SignPersonalMessage(context.Background(), msg)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, SignatureSize)
	require.Equal(t, byte(0x00), a[0])
	require.Equal(t, pub[:], a[65:])

	digest := PersonalMessageDigest(msg)
	require.True(t, crypto.VerifyEd25519(pub, digest[:], a[1:65]))
}

func TestSignPersonalMessage_CanceledContext(t *testing.T) {
	priv, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FromPrivate(priv).SignPersonalMessage(ctx, []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestULEB128(t *testing.T) {
	require.Equal(t, []byte{0x00}, appendULEB128(nil, 0))
	require.Equal(t, []byte{0x7f}, appendULEB128(nil, 127))
	require.Equal(t, []byte{0x80, 0x01}, appendULEB128(nil, 128))
	require.Equal(t, []byte{0xac, 0x02}, appendULEB128(nil, 300))
}
