package types

// Room is the ledger's view of an encrypted room.
type Room struct {
	ID         RoomID  `json:"id"`
	Name       string  `json:"name"`
	Creator    Address `json:"creator"`
	CreatedUTC int64   `json:"created_utc"`
}

// EncryptedMessage is a message as stored on the ledger. Envelope is the
// base64 text produced by the message cipher.
type EncryptedMessage struct {
	ID        MessageID `json:"id"`
	RoomID    RoomID    `json:"room_id"`
	Sender    Address   `json:"sender"`
	Envelope  string    `json:"envelope"`
	Timestamp int64     `json:"timestamp"`
}

// DisplayMessage is what the message-display flow renders. When
// Undecryptable is set, Text holds a placeholder.
type DisplayMessage struct {
	ID            MessageID `json:"id"`
	Sender        Address   `json:"sender"`
	Text          string    `json:"text"`
	Undecryptable bool      `json:"undecryptable"`
	Timestamp     int64     `json:"timestamp"`
}
