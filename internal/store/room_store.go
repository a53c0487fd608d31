package store

import (
	"path/filepath"
	"sync"

	"suichat/internal/domain"
)

const roomKeysFile = "room_keys.json"

// RoomKeyFileStore caches wrapped key records fetched from the ledger. The
// records are ciphertext; the room keys inside them are never stored.
type RoomKeyFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewRoomKeyFileStore returns a RoomKeyFileStore rooted at dir.
func NewRoomKeyFileStore(dir string) *RoomKeyFileStore {
	return &RoomKeyFileStore{dir: dir}
}

// map[room]map[member]record; []byte marshals as base64.
type roomKeyFile map[domain.RoomID]map[domain.Address]domain.WrappedKeyRecord

// SaveWrappedKey caches record for (room, member). Records are immutable on
// the ledger, so an existing entry is overwritten only with the same bytes.
func (s *RoomKeyFileStore) SaveWrappedKey(
	room domain.RoomID,
	member domain.Address,
	record domain.WrappedKeyRecord,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, roomKeysFile)
	records := roomKeyFile{}
	if err := readJSON(path, &records); err != nil {
		return err
	}
	if records[room] == nil {
		records[room] = map[domain.Address]domain.WrappedKeyRecord{}
	}
	records[room][member] = append(domain.WrappedKeyRecord(nil), record...)
	return writeJSON(path, records)
}

// LoadWrappedKey returns the cached record for (room, member).
func (s *RoomKeyFileStore) LoadWrappedKey(
	room domain.RoomID,
	member domain.Address,
) (domain.WrappedKeyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, roomKeysFile)
	records := roomKeyFile{}
	if err := readJSON(path, &records); err != nil {
		return nil, false, err
	}
	rec, ok := records[room][member]
	return rec, ok, nil
}

var _ domain.RoomKeyStore = (*RoomKeyFileStore)(nil)
