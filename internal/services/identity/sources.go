package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"suichat/internal/domain"
	"suichat/internal/idp"
	"suichat/internal/protocol/derive"
)

// ErrNoSource is returned when no authentication is configured.
var ErrNoSource = errors.New("no wallet or id token configured")

// WalletSource derives keys from a wallet signature over derive.SignMessage.
type WalletSource struct {
	Signer domain.WalletSigner
}

// Method reports wallet authentication.
func (WalletSource) Method() domain.AuthMethod { return domain.AuthWallet }

// Resolve asks the wallet to sign the derivation message.
func (s WalletSource) Resolve(ctx context.Context) (domain.DerivationInput, domain.Address, error) {
	if s.Signer == nil {
		return nil, "", ErrNoSource
	}
	sig, err := s.Signer.SignPersonalMessage(ctx, []byte(derive.SignMessage))
	if err != nil {
		return nil, "", fmt.Errorf("wallet signature: %w", err)
	}
	return domain.SignatureInput{Signature: sig}, s.Signer.Address(), nil
}

// ClaimsSource derives keys from a federated id token plus its salt.
type ClaimsSource struct {
	IDToken  string
	Provider domain.SaltProvider
	Now      func() time.Time
}

// Method reports federated authentication.
func (ClaimsSource) Method() domain.AuthMethod { return domain.AuthClaims }

// Resolve extracts sub/iss/aud and fetches the salt. The address is the one
// the salt service reports for this login.
func (s ClaimsSource) Resolve(ctx context.Context) (domain.DerivationInput, domain.Address, error) {
	if s.IDToken == "" || s.Provider == nil {
		return nil, "", ErrNoSource
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	claims, err := idp.ParseClaims(s.IDToken, now())
	if err != nil {
		return nil, "", err
	}
	salt, err := s.Provider.FetchSalt(ctx, s.IDToken)
	if err != nil {
		return nil, "", fmt.Errorf("fetch salt: %w", err)
	}
	return domain.ClaimsInput{
		Subject:  claims.Subject,
		Issuer:   claims.Issuer,
		Audience: claims.Audience,
		Salt:     salt.Salt,
	}, salt.Address.Normalize(), nil
}

// CachedSource resolves its inner source once and replays the result, so a
// command that needs the address and the keypair signs or fetches the salt
// only once. It must not outlive the command it serves.
type CachedSource struct {
	inner domain.KeySource

	once sync.Once
	in   domain.DerivationInput
	addr domain.Address
	err  error
}

// Cache wraps src.
func Cache(src domain.KeySource) *CachedSource {
	return &CachedSource{inner: src}
}

// Method reports the inner source's method.
func (c *CachedSource) Method() domain.AuthMethod { return c.inner.Method() }

// Resolve resolves the inner source on first use.
func (c *CachedSource) Resolve(ctx context.Context) (domain.DerivationInput, domain.Address, error) {
	c.once.Do(func() {
		c.in, c.addr, c.err = c.inner.Resolve(ctx)
	})
	return c.in, c.addr, c.err
}

var (
	_ domain.KeySource = WalletSource{}
	_ domain.KeySource = ClaimsSource{}
	_ domain.KeySource = (*CachedSource)(nil)
)
