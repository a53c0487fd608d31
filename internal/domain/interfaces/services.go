package interfaces

import (
	"context"

	domaintypes "suichat/internal/domain/types"
)

// IdentityService derives member keypairs and publishes their public halves.
type IdentityService interface {
	Derive(
		ctx context.Context,
		source KeySource,
	) (domaintypes.Keypair, domaintypes.Address, error)
	Publish(ctx context.Context, source KeySource) (domaintypes.X25519Public, domaintypes.Address, error)
}

// RoomService creates rooms and recovers their symmetric keys.
type RoomService interface {
	CreateRoom(
		ctx context.Context,
		source KeySource,
		name string,
	) (domaintypes.Room, error)
	OpenRoom(
		ctx context.Context,
		source KeySource,
		room domaintypes.RoomID,
	) (domaintypes.RoomKey, domaintypes.Address, error)
}

// InviteService re-wraps a room key for a new member.
type InviteService interface {
	Invite(
		ctx context.Context,
		source KeySource,
		room domaintypes.RoomID,
		invitee domaintypes.Address,
	) (domaintypes.WrappedKeyRecord, error)
}

// MessageService encrypts, submits, fetches and decrypts room messages.
type MessageService interface {
	SendMessage(
		ctx context.Context,
		source KeySource,
		room domaintypes.RoomID,
		text string,
	) (domaintypes.EncryptedMessage, error)
	ListMessages(
		ctx context.Context,
		source KeySource,
		room domaintypes.RoomID,
		limit int,
	) ([]domaintypes.DisplayMessage, error)
}
