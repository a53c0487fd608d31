// Package ledgertest provides an in-memory domain.LedgerClient for service
// tests, with hooks to inject failures and malformed data.
package ledgertest

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"suichat/internal/domain"
)

// Memory is an in-memory ledger. The zero value is not usable; use New.
type Memory struct {
	mu       sync.Mutex
	keys     map[domain.Address][]byte
	rooms    map[domain.RoomID]domain.Room
	records  map[domain.RoomID]map[domain.Address]domain.WrappedKeyRecord
	messages map[domain.RoomID][]domain.EncryptedMessage
	seq      int

	// Fail, when set, is consulted before every operation; a non-nil return
	// is the operation's error.
	Fail func(op string) error
}

// New returns an empty ledger.
func New() *Memory {
	return &Memory{
		keys:     map[domain.Address][]byte{},
		rooms:    map[domain.RoomID]domain.Room{},
		records:  map[domain.RoomID]map[domain.Address]domain.WrappedKeyRecord{},
		messages: map[domain.RoomID][]domain.EncryptedMessage{},
	}
}

// SetRawPublicKey stores arbitrary bytes as member's key, bypassing validation.
func (m *Memory) SetRawPublicKey(member domain.Address, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[member] = append([]byte(nil), raw...)
}

// SetRecord stores a record directly, bypassing membership rules.
func (m *Memory) SetRecord(room domain.RoomID, member domain.Address, rec domain.WrappedKeyRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[room] == nil {
		m.records[room] = map[domain.Address]domain.WrappedKeyRecord{}
	}
	m.records[room][member] = append(domain.WrappedKeyRecord(nil), rec...)
}

// AppendRaw appends a message without any checks.
func (m *Memory) AppendRaw(msg domain.EncryptedMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if msg.ID == "" {
		msg.ID = domain.MessageID("m" + strconv.Itoa(m.seq))
	}
	m.messages[msg.RoomID] = append(m.messages[msg.RoomID], msg)
}

func (m *Memory) fail(op string) error {
	if m.Fail == nil {
		return nil
	}
	return m.Fail(op)
}

func (m *Memory) PublishPublicKey(_ context.Context, member domain.Address, pub domain.X25519Public) error {
	if err := m.fail("PublishPublicKey"); err != nil {
		return err
	}
	m.SetRawPublicKey(member, pub[:])
	return nil
}

func (m *Memory) GetMemberPublicKey(_ context.Context, member domain.Address) ([]byte, error) {
	if err := m.fail("GetMemberPublicKey"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.keys[member]
	if !ok {
		return nil, fmt.Errorf("%w: public key for %s", domain.ErrNotFound, member)
	}
	return append([]byte(nil), k...), nil
}

func (m *Memory) GetWrappedKeyRecord(_ context.Context, room domain.RoomID, member domain.Address) (domain.WrappedKeyRecord, error) {
	if err := m.fail("GetWrappedKeyRecord"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[room][member]
	if !ok {
		return nil, fmt.Errorf("%w: record for %s in %s", domain.ErrNotFound, member, room)
	}
	return append(domain.WrappedKeyRecord(nil), rec...), nil
}

func (m *Memory) GetRoom(_ context.Context, room domain.RoomID) (domain.Room, error) {
	if err := m.fail("GetRoom"); err != nil {
		return domain.Room{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[room]
	if !ok {
		return r, fmt.Errorf("%w: room %s", domain.ErrNotFound, room)
	}
	return r, nil
}

func (m *Memory) ListMessages(_ context.Context, room domain.RoomID, limit int) ([]domain.EncryptedMessage, error) {
	if err := m.fail("ListMessages"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.messages[room]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]domain.EncryptedMessage(nil), msgs...), nil
}

func (m *Memory) SubmitRoom(_ context.Context, room domain.Room, rec domain.WrappedKeyRecord) (domain.Room, error) {
	if err := m.fail("SubmitRoom"); err != nil {
		return domain.Room{}, err
	}
	m.mu.Lock()
	m.seq++
	if room.ID == "" {
		room.ID = domain.RoomID("room-" + strconv.Itoa(m.seq))
	}
	if _, exists := m.rooms[room.ID]; exists {
		m.mu.Unlock()
		return domain.Room{}, fmt.Errorf("room %s exists", room.ID)
	}
	room.CreatedUTC = int64(m.seq)
	m.rooms[room.ID] = room
	m.mu.Unlock()

	m.SetRecord(room.ID, room.Creator, rec)
	return room, nil
}

func (m *Memory) SubmitInvite(_ context.Context, room domain.RoomID, inviter, invitee domain.Address, rec domain.WrappedKeyRecord) error {
	if err := m.fail("SubmitInvite"); err != nil {
		return err
	}
	m.mu.Lock()
	_, isMember := m.records[room][inviter]
	_, exists := m.records[room][invitee]
	m.mu.Unlock()
	if !isMember {
		return fmt.Errorf("%w: %s", domain.ErrNotMember, inviter)
	}
	if exists {
		return fmt.Errorf("%s already a member", invitee)
	}
	m.SetRecord(room, invitee, rec)
	return nil
}

func (m *Memory) SubmitMessage(_ context.Context, msg domain.EncryptedMessage) (domain.EncryptedMessage, error) {
	if err := m.fail("SubmitMessage"); err != nil {
		return domain.EncryptedMessage{}, err
	}
	m.mu.Lock()
	_, isMember := m.records[msg.RoomID][msg.Sender]
	m.mu.Unlock()
	if !isMember {
		return domain.EncryptedMessage{}, fmt.Errorf("%w: %s", domain.ErrNotMember, msg.Sender)
	}
	m.mu.Lock()
	m.seq++
	msg.ID = domain.MessageID("m" + strconv.Itoa(m.seq))
	msg.Timestamp = int64(m.seq)
	m.messages[msg.RoomID] = append(m.messages[msg.RoomID], msg)
	m.mu.Unlock()
	return msg, nil
}

var _ domain.LedgerClient = (*Memory)(nil)
