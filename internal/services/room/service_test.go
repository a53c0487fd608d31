package room_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/ledger/ledgertest"
	"suichat/internal/protocol/roomkey"
	"suichat/internal/services/identity"
	"suichat/internal/services/room"
	"suichat/internal/store"
	"suichat/internal/wallet"
)

type fixture struct {
	ledger *ledgertest.Memory
	ids    *identity.Service
	rooms  *room.Service
	cache  *store.RoomKeyFileStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	led := ledgertest.New()
	ids := identity.New(led, nil, "", nil, nil)
	cache := store.NewRoomKeyFileStore(t.TempDir())
	return fixture{
		ledger: led,
		ids:    ids,
		rooms:  room.New(ids, led, cache, nil, nil),
		cache:  cache,
	}
}

func member(t *testing.T) identity.WalletSource {
	t.Helper()
	priv, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	return identity.WalletSource{Signer: wallet.FromPrivate(priv)}
}

func TestCreateRoom_CreatorCanOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := member(t)

	r, err := f.rooms.CreateRoom(ctx, alice, "  general ")
	require.NoError(t, err)
	require.Equal(t, "general", r.Name)
	require.Equal(t, alice.Signer.Address(), r.Creator)

	rec, err := f.ledger.GetWrappedKeyRecord(ctx, r.ID, r.Creator)
	require.NoError(t, err)
	require.Len(t, rec, roomkey.RecordSize)

	cached, ok, err := f.cache.LoadWrappedKey(r.ID, r.Creator)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec, cached)

	key, addr, err := f.rooms.OpenRoom(ctx, alice, r.ID)
	require.NoError(t, err)
	require.Equal(t, r.Creator, addr)
	require.NotEqual(t, domain.RoomKey{}, key)
}

func TestCreateRoom_EmptyName(t *testing.T) {
	f := newFixture(t)
	_, err := f.rooms.CreateRoom(context.Background(), member(t), "   ")
	require.ErrorIs(t, err, room.ErrEmptyName)
}

func TestOpenRoom_OutsiderIsNotMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r, err := f.rooms.CreateRoom(ctx, member(t), "general")
	require.NoError(t, err)

	_, _, err = f.rooms.OpenRoom(ctx, member(t), r.ID)
	require.ErrorIs(t, err, domain.ErrNotMember)
}

func TestOpenRoom_RecordForOtherKeyIsNotMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob := member(t), member(t)
	r, err := f.rooms.CreateRoom(ctx, alice, "general")
	require.NoError(t, err)

	// bob's slot holds a record sealed to alice's key
	aliceRec, err := f.ledger.GetWrappedKeyRecord(ctx, r.ID, alice.Signer.Address())
	require.NoError(t, err)
	f.ledger.SetRecord(r.ID, bob.Signer.Address(), aliceRec)

	_, _, err = f.rooms.OpenRoom(ctx, bob, r.ID)
	require.ErrorIs(t, err, domain.ErrNotMember)
}

func TestOpenRoom_UsesCacheWhenLedgerDown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := member(t)
	r, err := f.rooms.CreateRoom(ctx, alice, "general")
	require.NoError(t, err)
	want, _, err := f.rooms.OpenRoom(ctx, alice, r.ID)
	require.NoError(t, err)

	f.ledger.Fail = func(string) error { return domain.ErrUnavailable }
	got, _, err := f.rooms.OpenRoom(ctx, alice, r.ID)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestOpenRoom_LedgerDownWithoutCacheIsUnavailable(t *testing.T) {
	ctx := context.Background()
	led := ledgertest.New()
	ids := identity.New(led, nil, "", nil, nil)
	rooms := room.New(ids, led, nil, nil, nil)
	alice := member(t)
	r, err := rooms.CreateRoom(ctx, alice, "general")
	require.NoError(t, err)

	led.Fail = func(string) error { return domain.ErrUnavailable }
	_, _, err = rooms.OpenRoom(ctx, alice, r.ID)
	require.ErrorIs(t, err, domain.ErrUnavailable)
	require.NotErrorIs(t, err, domain.ErrNotMember)
}
