package ledger

import "suichat/internal/domain"

// Request and response bodies shared with the dev ledger server.

// PublicKeyBody carries a member's X25519 public key.
type PublicKeyBody struct {
	Address   domain.Address `json:"address,omitempty"`
	PublicKey string         `json:"public_key"`
}

// RecordBody carries one wrapped key record.
type RecordBody struct {
	RoomID domain.RoomID  `json:"room_id,omitempty"`
	Member domain.Address `json:"member,omitempty"`
	Record string         `json:"record"`
}

// CreateRoomBody creates a room with the creator's record.
type CreateRoomBody struct {
	ID      domain.RoomID  `json:"id,omitempty"`
	Name    string         `json:"name"`
	Creator domain.Address `json:"creator"`
	Record  string         `json:"record"`
}

// InviteBody adds a member wrapped by an existing member.
type InviteBody struct {
	Inviter domain.Address `json:"inviter"`
	Member  domain.Address `json:"member"`
	Record  string         `json:"record"`
}

// MessageBody submits an encrypted message.
type MessageBody struct {
	Sender   domain.Address `json:"sender"`
	Envelope string         `json:"envelope"`
}

// ErrorBody is returned with every non-2xx status.
type ErrorBody struct {
	Error string `json:"error"`
}
