package interfaces

import (
	"context"

	domaintypes "suichat/internal/domain/types"
)

// WalletSigner is the wallet signing service.
type WalletSigner interface {
	Address() domaintypes.Address
	SignPersonalMessage(ctx context.Context, msg []byte) ([]byte, error)
}

// SaltProvider is the federated identity salt service. It fails if the token
// is expired or malformed.
type SaltProvider interface {
	FetchSalt(ctx context.Context, idToken string) (domaintypes.SaltResponse, error)
}

// KeySource resolves the current user's authentication into a derivation
// input and the ledger address it belongs to.
type KeySource interface {
	Method() domaintypes.AuthMethod
	Resolve(ctx context.Context) (domaintypes.DerivationInput, domaintypes.Address, error)
}

// LedgerReader is the read side of the ledger. Absent objects are reported
// with domain.ErrNotFound, unreachable ledgers with domain.ErrUnavailable.
type LedgerReader interface {
	// GetMemberPublicKey returns the raw published key bytes; callers
	// validate the length.
	GetMemberPublicKey(ctx context.Context, member domaintypes.Address) ([]byte, error)
	GetWrappedKeyRecord(
		ctx context.Context,
		room domaintypes.RoomID,
		member domaintypes.Address,
	) (domaintypes.WrappedKeyRecord, error)
	GetRoom(ctx context.Context, room domaintypes.RoomID) (domaintypes.Room, error)
	ListMessages(
		ctx context.Context,
		room domaintypes.RoomID,
		limit int,
	) ([]domaintypes.EncryptedMessage, error)
}

// LedgerWriter submits transaction payloads to the ledger.
type LedgerWriter interface {
	PublishPublicKey(
		ctx context.Context,
		member domaintypes.Address,
		pub domaintypes.X25519Public,
	) error
	SubmitRoom(
		ctx context.Context,
		room domaintypes.Room,
		creatorRecord domaintypes.WrappedKeyRecord,
	) (domaintypes.Room, error)
	SubmitInvite(
		ctx context.Context,
		room domaintypes.RoomID,
		inviter domaintypes.Address,
		invitee domaintypes.Address,
		record domaintypes.WrappedKeyRecord,
	) error
	SubmitMessage(
		ctx context.Context,
		msg domaintypes.EncryptedMessage,
	) (domaintypes.EncryptedMessage, error)
}

// LedgerClient is both sides of the ledger.
type LedgerClient interface {
	LedgerReader
	LedgerWriter
}
