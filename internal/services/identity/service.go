package identity

import (
	"context"
	"fmt"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/observability"
	"suichat/internal/protocol/derive"
	"suichat/internal/util/memzero"
)

// Service derives member keypairs and publishes their public halves.
type Service struct {
	ledger    domain.LedgerWriter
	accounts  domain.AccountStore
	ledgerURL string
	log       *observability.Logger
	metrics   *observability.Metrics
}

// New returns an identity service. accounts may be nil when nothing should
// be recorded locally.
func New(
	ledger domain.LedgerWriter,
	accounts domain.AccountStore,
	ledgerURL string,
	log *observability.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		ledger:    ledger,
		accounts:  accounts,
		ledgerURL: ledgerURL,
		log:       observability.OrNop(log),
		metrics:   metrics,
	}
}

// Derive resolves source and derives the keypair. The caller owns the
// secret key and should wipe it when done.
func (s *Service) Derive(ctx context.Context, source domain.KeySource) (domain.Keypair, domain.Address, error) {
	if source == nil {
		return domain.Keypair{}, "", ErrNoSource
	}
	input, addr, err := source.Resolve(ctx)
	if err != nil {
		return domain.Keypair{}, "", err
	}
	kp, err := derive.Derive(input)
	s.metrics.RecordCryptoOperation("derive", err == nil)
	if err != nil {
		return domain.Keypair{}, "", fmt.Errorf("derive encryption key: %w", err)
	}
	s.log.KeyDerived(string(source.Method()), addr.String(), crypto.Fingerprint(kp.PublicKey[:]).String())
	return kp, addr, nil
}

// Publish derives the keypair and registers its public key on the ledger.
func (s *Service) Publish(ctx context.Context, source domain.KeySource) (domain.X25519Public, domain.Address, error) {
	kp, addr, err := s.Derive(ctx, source)
	if err != nil {
		return domain.X25519Public{}, "", err
	}
	memzero.Zero(kp.SecretKey[:])

	if err := s.ledger.PublishPublicKey(ctx, addr, kp.PublicKey); err != nil {
		return domain.X25519Public{}, "", fmt.Errorf("publish public key: %w", err)
	}

	if s.accounts != nil {
		profile := domain.AccountProfile{
			LedgerURL:   s.ledgerURL,
			Address:     addr,
			AuthMethod:  source.Method(),
			Fingerprint: crypto.Fingerprint(kp.PublicKey[:]),
			Registered:  true,
		}
		if err := s.accounts.SaveAccountProfile(profile); err != nil {
			s.log.Error(err, "save account profile")
		}
	}
	return kp.PublicKey, addr, nil
}

var _ domain.IdentityService = (*Service)(nil)
