package ledgerserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"suichat/internal/domain"
)

var (
	// ErrConflict is returned when an object already exists.
	ErrConflict = errors.New("already exists")
	// ErrInvalid is returned for a request that fails validation.
	ErrInvalid = errors.New("invalid request")
)

const schema = `
CREATE TABLE IF NOT EXISTS members (
    address    TEXT PRIMARY KEY,
    public_key BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS rooms (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    creator     TEXT NOT NULL,
    created_utc INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS room_keys (
    room_id  TEXT NOT NULL REFERENCES rooms(id),
    member   TEXT NOT NULL,
    record   BLOB NOT NULL,
    added_by TEXT NOT NULL,
    PRIMARY KEY (room_id, member)
);
CREATE TABLE IF NOT EXISTS messages (
    seq       INTEGER PRIMARY KEY AUTOINCREMENT,
    id        TEXT NOT NULL UNIQUE,
    room_id   TEXT NOT NULL REFERENCES rooms(id),
    sender    TEXT NOT NULL,
    envelope  TEXT NOT NULL,
    timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS messages_room ON messages(room_id, seq);
`

// Store is the SQLite-backed ledger state.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the database at path. ":memory:" gives a
// private in-memory database.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	// One connection: SQLite serialises writers anyway, and ":memory:" is
	// per connection.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init ledger db: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// PutPublicKey publishes or replaces the key for address.
func (s *Store) PutPublicKey(ctx context.Context, address domain.Address, pub []byte, now int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (address, public_key, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET public_key = excluded.public_key, updated_at = excluded.updated_at`,
		address, pub, now)
	return err
}

// PublicKey returns the key published for address.
func (s *Store) PublicKey(ctx context.Context, address domain.Address) ([]byte, error) {
	var pub []byte
	err := s.db.QueryRowContext(ctx, `SELECT public_key FROM members WHERE address = ?`, address).Scan(&pub)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return pub, err
}

// CreateRoom inserts room and the creator's record atomically.
func (s *Store) CreateRoom(ctx context.Context, room domain.Room, record []byte) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (id, name, creator, created_utc) VALUES (?, ?, ?, ?)`,
			room.ID, room.Name, room.Creator, room.CreatedUTC)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: room %s", ErrConflict, room.ID)
			}
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO room_keys (room_id, member, record, added_by) VALUES (?, ?, ?, ?)`,
			room.ID, room.Creator, record, room.Creator)
		return err
	})
}

// Room returns room metadata.
func (s *Store) Room(ctx context.Context, id domain.RoomID) (domain.Room, error) {
	var r domain.Room
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, creator, created_utc FROM rooms WHERE id = ?`, id).
		Scan(&r.ID, &r.Name, &r.Creator, &r.CreatedUTC)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%w: room %s", domain.ErrNotFound, id)
	}
	return r, err
}

// WrappedKey returns member's record for room.
func (s *Store) WrappedKey(ctx context.Context, room domain.RoomID, member domain.Address) ([]byte, error) {
	var rec []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM room_keys WHERE room_id = ? AND member = ?`, room, member).Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no record for %s in %s", domain.ErrNotFound, member, room)
	}
	return rec, err
}

// AddMember stores member's record. inviter must already hold a record.
func (s *Store) AddMember(
	ctx context.Context,
	room domain.RoomID,
	inviter, member domain.Address,
	record []byte,
) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		if err := requireRoom(ctx, tx, room); err != nil {
			return err
		}
		if err := requireMember(ctx, tx, room, inviter); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO room_keys (room_id, member, record, added_by) VALUES (?, ?, ?, ?)`,
			room, member, record, inviter)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s is already a member of %s", ErrConflict, member, room)
		}
		return err
	})
}

// AddMessage appends msg. The sender must hold a record for the room.
func (s *Store) AddMessage(ctx context.Context, msg domain.EncryptedMessage) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		if err := requireRoom(ctx, tx, msg.RoomID); err != nil {
			return err
		}
		if err := requireMember(ctx, tx, msg.RoomID, msg.Sender); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO messages (id, room_id, sender, envelope, timestamp) VALUES (?, ?, ?, ?, ?)`,
			msg.ID, msg.RoomID, msg.Sender, msg.Envelope, msg.Timestamp)
		return err
	})
}

// Messages returns the last limit messages of room, oldest first.
func (s *Store) Messages(ctx context.Context, room domain.RoomID, limit int) ([]domain.EncryptedMessage, error) {
	if _, err := s.Room(ctx, room); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, room_id, sender, envelope, timestamp FROM (
			SELECT seq, id, room_id, sender, envelope, timestamp
			FROM messages WHERE room_id = ? ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, room, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.EncryptedMessage{}
	for rows.Next() {
		var m domain.EncryptedMessage
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Sender, &m.Envelope, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func requireRoom(ctx context.Context, tx *sql.Tx, room domain.RoomID) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, room).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: room %s", domain.ErrNotFound, room)
	}
	return err
}

func requireMember(ctx context.Context, tx *sql.Tx, room domain.RoomID, member domain.Address) error {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM room_keys WHERE room_id = ? AND member = ?`, room, member).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotMember, member)
	}
	return err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
