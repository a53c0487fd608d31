package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"suichat/internal/domain"
	"suichat/internal/observability"
	"suichat/internal/protocol/roomkey"
	"suichat/internal/util/memzero"
)

// ErrEmptyName is returned when creating a room without a name.
var ErrEmptyName = errors.New("room name is empty")

// Service creates rooms and opens them for their members.
type Service struct {
	identity domain.IdentityService
	ledger   domain.LedgerClient
	cache    domain.RoomKeyStore
	log      *observability.Logger
	metrics  *observability.Metrics
}

// New returns a room service. cache may be nil.
func New(
	identity domain.IdentityService,
	ledger domain.LedgerClient,
	cache domain.RoomKeyStore,
	log *observability.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		identity: identity,
		ledger:   ledger,
		cache:    cache,
		log:      observability.OrNop(log),
		metrics:  metrics,
	}
}

// CreateRoom creates a room owned by the caller and returns it as the ledger
// stored it.
func (s *Service) CreateRoom(ctx context.Context, source domain.KeySource, name string) (domain.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Room{}, ErrEmptyName
	}
	kp, addr, err := s.identity.Derive(ctx, source)
	if err != nil {
		return domain.Room{}, err
	}
	memzero.Zero(kp.SecretKey[:])

	key, err := roomkey.NewRoomKey()
	if err != nil {
		return domain.Room{}, err
	}
	defer memzero.Zero(key[:])

	rec, err := roomkey.WrapForMember(key, kp.PublicKey)
	s.metrics.RecordCryptoOperation("wrap", err == nil)
	if err != nil {
		return domain.Room{}, err
	}

	room, err := s.ledger.SubmitRoom(ctx, domain.Room{Name: name, Creator: addr}, rec)
	if err != nil {
		return domain.Room{}, fmt.Errorf("submit room: %w", err)
	}
	s.remember(room.ID, addr, rec)
	s.log.WithRoom(room.ID.String()).Info("room created")
	return room, nil
}

// OpenRoom recovers the room key for the caller. The caller should wipe the
// key when done.
func (s *Service) OpenRoom(
	ctx context.Context,
	source domain.KeySource,
	room domain.RoomID,
) (domain.RoomKey, domain.Address, error) {
	kp, addr, err := s.identity.Derive(ctx, source)
	if err != nil {
		return domain.RoomKey{}, "", err
	}
	defer memzero.Zero(kp.SecretKey[:])

	if rec, ok := s.cached(room, addr); ok {
		if key, ok := roomkey.UnwrapAsMember(rec, kp.SecretKey); ok {
			s.metrics.RecordCryptoOperation("unwrap", true)
			return key, addr, nil
		}
	}

	rec, err := s.ledger.GetWrappedKeyRecord(ctx, room, addr)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.RoomKey{}, "", fmt.Errorf("%w: no wrapped key for %s in room %s", domain.ErrNotMember, addr, room)
	}
	if err != nil {
		return domain.RoomKey{}, "", fmt.Errorf("fetch wrapped key: %w", err)
	}

	key, ok := roomkey.UnwrapAsMember(rec, kp.SecretKey)
	s.metrics.RecordCryptoOperation("unwrap", ok)
	if !ok {
		return domain.RoomKey{}, "", fmt.Errorf("%w: wrapped key for %s does not open with the derived key", domain.ErrNotMember, addr)
	}
	s.remember(room, addr, rec)
	return key, addr, nil
}

func (s *Service) cached(room domain.RoomID, member domain.Address) (domain.WrappedKeyRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	rec, ok, err := s.cache.LoadWrappedKey(room, member)
	if err != nil {
		s.log.Error(err, "load cached wrapped key")
		return nil, false
	}
	return rec, ok
}

func (s *Service) remember(room domain.RoomID, member domain.Address, rec domain.WrappedKeyRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveWrappedKey(room, member, rec); err != nil {
		s.log.Error(err, "cache wrapped key")
	}
}

var _ domain.RoomService = (*Service)(nil)
