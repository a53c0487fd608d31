package message_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/ledger/ledgertest"
	"suichat/internal/protocol/envelope"
	"suichat/internal/services/identity"
	"suichat/internal/services/invite"
	"suichat/internal/services/message"
	"suichat/internal/services/room"
	"suichat/internal/wallet"
)

type fixture struct {
	ledger   *ledgertest.Memory
	ids      *identity.Service
	rooms    *room.Service
	invites  *invite.Service
	messages *message.Service
}

func newFixture() fixture {
	led := ledgertest.New()
	ids := identity.New(led, nil, "", nil, nil)
	rooms := room.New(ids, led, nil, nil, nil)
	return fixture{
		ledger:   led,
		ids:      ids,
		rooms:    rooms,
		invites:  invite.New(ids, led, nil, nil),
		messages: message.New(rooms, led, nil, nil),
	}
}

func (f fixture) register(t *testing.T) identity.WalletSource {
	t.Helper()
	priv, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	src := identity.WalletSource{Signer: wallet.FromPrivate(priv)}
	_, _, err = f.ids.Publish(context.Background(), src)
	require.NoError(t, err)
	return src
}

func TestSendAndList_MembersReadEachOther(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice, bob := f.register(t), f.register(t)

	r, err := f.rooms.CreateRoom(ctx, alice, "general")
	require.NoError(t, err)
	rec, err := f.invites.Invite(ctx, alice, r.ID, bob.Signer.Address())
	require.NoError(t, err)
	require.NoError(t, f.ledger.SubmitInvite(ctx, r.ID, alice.Signer.Address(), bob.Signer.Address(), rec))

	_, err = f.messages.SendMessage(ctx, alice, r.ID, "hello bob")
	require.NoError(t, err)
	_, err = f.messages.SendMessage(ctx, bob, r.ID, "héllo 👋")
	require.NoError(t, err)
	_, err = f.messages.SendMessage(ctx, bob, r.ID, "")
	require.NoError(t, err)

	got, err := f.messages.ListMessages(ctx, alice, r.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "hello bob", got[0].Text)
	require.Equal(t, alice.Signer.Address(), got[0].Sender)
	require.Equal(t, "héllo 👋", got[1].Text)
	require.Equal(t, "", got[2].Text)
	for _, m := range got {
		require.False(t, m.Undecryptable)
	}
}

func TestList_BadEnvelopeBecomesPlaceholder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t)
	r, err := f.rooms.CreateRoom(ctx, alice, "general")
	require.NoError(t, err)

	_, err = f.messages.SendMessage(ctx, alice, r.ID, "first")
	require.NoError(t, err)

	foreign, err := envelope.EncryptMessage("other room", domain.RoomKey{1})
	require.NoError(t, err)
	f.ledger.AppendRaw(domain.EncryptedMessage{RoomID: r.ID, Sender: "0xx", Envelope: foreign})
	f.ledger.AppendRaw(domain.EncryptedMessage{RoomID: r.ID, Sender: "0xx", Envelope: "%%%"})
	f.ledger.AppendRaw(domain.EncryptedMessage{RoomID: r.ID, Sender: "0xx", Envelope: crypto.B64([]byte{0x02, 1, 2})})

	_, err = f.messages.SendMessage(ctx, alice, r.ID, "last")
	require.NoError(t, err)

	got, err := f.messages.ListMessages(ctx, alice, r.ID, 0)
	require.NoError(t, err)
	require.Len(t, got, 5)
	require.Equal(t, "first", got[0].Text)
	for _, m := range got[1:4] {
		require.True(t, m.Undecryptable)
		require.Equal(t, envelope.Placeholder, m.Text)
	}
	require.Equal(t, "last", got[4].Text)
}

func TestSend_NonMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice, eve := f.register(t), f.register(t)
	r, err := f.rooms.CreateRoom(ctx, alice, "general")
	require.NoError(t, err)

	_, err = f.messages.SendMessage(ctx, eve, r.ID, "let me in")
	require.ErrorIs(t, err, domain.ErrNotMember)

	_, err = f.messages.ListMessages(ctx, eve, r.ID, 10)
	require.ErrorIs(t, err, domain.ErrNotMember)
}

func TestList_LedgerUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	alice := f.register(t)
	r, err := f.rooms.CreateRoom(ctx, alice, "general")
	require.NoError(t, err)

	f.ledger.Fail = func(op string) error {
		if op == "ListMessages" {
			return domain.ErrUnavailable
		}
		return nil
	}
	_, err = f.messages.ListMessages(ctx, alice, r.ID, 10)
	require.ErrorIs(t, err, domain.ErrUnavailable)
}
