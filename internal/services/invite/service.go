package invite

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/observability"
	"suichat/internal/protocol/roomkey"
	"suichat/internal/util/memzero"
)

var (
	// ErrNoPublicKey is returned when the invitee has not published an
	// encryption key.
	ErrNoPublicKey = errors.New("invitee has not published an encryption key")
	// ErrSelfInvite is returned when inviter and invitee are the same member.
	ErrSelfInvite = errors.New("cannot invite yourself")
)

// Service runs the invite chain.
type Service struct {
	identity domain.IdentityService
	ledger   domain.LedgerReader
	log      *observability.Logger
	metrics  *observability.Metrics
}

// New returns an invite service.
func New(
	identity domain.IdentityService,
	ledger domain.LedgerReader,
	log *observability.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		identity: identity,
		ledger:   ledger,
		log:      observability.OrNop(log),
		metrics:  metrics,
	}
}

// Invite returns invitee's wrapped record for room. No retries are made.
func (s *Service) Invite(
	ctx context.Context,
	source domain.KeySource,
	room domain.RoomID,
	invitee domain.Address,
) (rec domain.WrappedKeyRecord, err error) {
	invitee = invitee.Normalize()
	ctx, span := observability.StartSpan(ctx, "invite.Invite",
		attribute.String("room_id", room.String()),
		attribute.String("invitee", invitee.String()),
	)
	step := "derive"
	defer func() {
		if err != nil {
			s.log.InviteFailed(room.String(), invitee.String(), step, err)
		}
		observability.EndSpan(span, err)
	}()

	// 1. inviter keypair
	kp, inviter, err := s.identity.Derive(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("derive inviter key: %w", err)
	}
	defer memzero.Zero(kp.SecretKey[:])
	inviter = inviter.Normalize()
	if inviter == invitee {
		return nil, ErrSelfInvite
	}

	// 2. invitee key and own record
	step = "fetch"
	var (
		rawPub []byte
		own    domain.WrappedKeyRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.ledger.GetMemberPublicKey(gctx, invitee)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("%w: %s", ErrNoPublicKey, invitee)
		case err != nil:
			return fmt.Errorf("fetch invitee public key: %w", err)
		}
		rawPub = b
		return nil
	})
	g.Go(func() error {
		r, err := s.ledger.GetWrappedKeyRecord(gctx, room, inviter)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("%w: no wrapped key for %s in room %s", domain.ErrNotMember, inviter, room)
		case err != nil:
			return fmt.Errorf("fetch own wrapped key: %w", err)
		}
		own = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	step = "validate"
	pub, err := roomkey.ParsePublicKey(rawPub)
	if err != nil {
		return nil, fmt.Errorf("invitee %s: %w", invitee, err)
	}

	// 3. unwrap
	step = "unwrap"
	key, ok := roomkey.UnwrapAsMember(own, kp.SecretKey)
	s.metrics.RecordCryptoOperation("unwrap", ok)
	if !ok {
		return nil, fmt.Errorf("%w: wrapped key for %s does not open with the derived key", domain.ErrNotMember, inviter)
	}
	defer memzero.Zero(key[:])

	// 4. re-wrap
	step = "wrap"
	rec, err = roomkey.WrapForMember(key, pub)
	s.metrics.RecordCryptoOperation("wrap", err == nil)
	if err != nil {
		return nil, err
	}
	s.log.InviteCompleted(room.String(), invitee.String(), crypto.Fingerprint(pub[:]).String())
	return rec, nil
}

var _ domain.InviteService = (*Service)(nil)
