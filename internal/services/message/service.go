package message

import (
	"context"
	"fmt"

	"suichat/internal/domain"
	"suichat/internal/observability"
	"suichat/internal/protocol/envelope"
	"suichat/internal/util/memzero"
)

// Service sends and lists room messages.
type Service struct {
	rooms   domain.RoomService
	ledger  domain.LedgerClient
	log     *observability.Logger
	metrics *observability.Metrics
}

// New constructs a message service.
func New(
	rooms domain.RoomService,
	ledger domain.LedgerClient,
	log *observability.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		rooms:   rooms,
		ledger:  ledger,
		log:     observability.OrNop(log),
		metrics: metrics,
	}
}

// SendMessage encrypts text under the room key and submits it.
func (s *Service) SendMessage(
	ctx context.Context,
	source domain.KeySource,
	room domain.RoomID,
	text string,
) (domain.EncryptedMessage, error) {
	key, sender, err := s.rooms.OpenRoom(ctx, source, room)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	env, err := envelope.EncryptMessage(text, key)
	memzero.Zero(key[:])
	s.metrics.RecordCryptoOperation("encrypt", err == nil)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}

	stored, err := s.ledger.SubmitMessage(ctx, domain.EncryptedMessage{
		RoomID:   room,
		Sender:   sender,
		Envelope: env,
	})
	if err != nil {
		return domain.EncryptedMessage{}, fmt.Errorf("submit message: %w", err)
	}
	return stored, nil
}

// ListMessages fetches up to limit recent messages and decrypts them.
func (s *Service) ListMessages(
	ctx context.Context,
	source domain.KeySource,
	room domain.RoomID,
	limit int,
) ([]domain.DisplayMessage, error) {
	key, _, err := s.rooms.OpenRoom(ctx, source, room)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key[:])

	msgs, err := s.ledger.ListMessages(ctx, room, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make([]domain.DisplayMessage, 0, len(msgs))
	for _, m := range msgs {
		dm := domain.DisplayMessage{
			ID:        m.ID,
			Sender:    m.Sender,
			Timestamp: m.Timestamp,
		}
		text, err := envelope.DecryptMessage(m.Envelope, key)
		s.metrics.RecordCryptoOperation("decrypt", err == nil)
		if err != nil {
			s.log.DecryptFailed(room.String(), m.ID.String(), m.Sender.String())
			dm.Text = envelope.Placeholder
			dm.Undecryptable = true
		} else {
			dm.Text = text
		}
		out = append(out, dm)
	}
	return out, nil
}

var _ domain.MessageService = (*Service)(nil)
