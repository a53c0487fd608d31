package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/observability"
)

const maxResponseBytes = 4 << 20

var (
	// ErrConflict is returned when the ledger already holds the object.
	ErrConflict = errors.New("already exists on ledger")
	// ErrMalformedResponse is returned when a response field is not in its
	// single canonical encoding.
	ErrMalformedResponse = errors.New("malformed ledger response")
)

// strictB64 rejects non-canonical padding bits as well as bad alphabets.
var strictB64 = base64.StdEncoding.Strict()

// HTTP talks to a ledger over JSON/HTTP.
type HTTP struct {
	Base    string
	HTTP    *http.Client
	Metrics *observability.Metrics
}

// NewHTTP returns a client for base with the given request timeout.
func NewHTTP(base string, timeout time.Duration) *HTTP {
	return &HTTP{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: timeout},
	}
}

func memberPath(addr domain.Address) string {
	return "/members/" + url.PathEscape(addr.String())
}

func roomPath(room domain.RoomID) string {
	return "/rooms/" + url.PathEscape(room.String())
}

// PublishPublicKey registers pub for member.
func (c *HTTP) PublishPublicKey(ctx context.Context, member domain.Address, pub domain.X25519Public) error {
	return c.do(ctx, "publish_public_key", http.MethodPut, memberPath(member)+"/public-key",
		PublicKeyBody{PublicKey: crypto.B64(pub[:])}, nil)
}

// GetMemberPublicKey returns the raw published key bytes. Length is not
// checked here.
func (c *HTTP) GetMemberPublicKey(ctx context.Context, member domain.Address) ([]byte, error) {
	var out PublicKeyBody
	if err := c.do(ctx, "get_public_key", http.MethodGet, memberPath(member)+"/public-key", nil, &out); err != nil {
		return nil, err
	}
	return decodeField("public_key", out.PublicKey)
}

// GetWrappedKeyRecord returns member's record for room.
func (c *HTTP) GetWrappedKeyRecord(
	ctx context.Context,
	room domain.RoomID,
	member domain.Address,
) (domain.WrappedKeyRecord, error) {
	var out RecordBody
	path := roomPath(room) + "/keys/" + url.PathEscape(member.String())
	if err := c.do(ctx, "get_wrapped_key", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	rec, err := decodeField("record", out.Record)
	if err != nil {
		return nil, err
	}
	return domain.WrappedKeyRecord(rec), nil
}

// GetRoom returns room metadata.
func (c *HTTP) GetRoom(ctx context.Context, room domain.RoomID) (domain.Room, error) {
	var out domain.Room
	if err := c.do(ctx, "get_room", http.MethodGet, roomPath(room), nil, &out); err != nil {
		return domain.Room{}, err
	}
	return out, nil
}

// ListMessages returns up to limit most recent messages, oldest first. A
// limit <= 0 means the ledger default.
func (c *HTTP) ListMessages(ctx context.Context, room domain.RoomID, limit int) ([]domain.EncryptedMessage, error) {
	path := roomPath(room) + "/messages"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []domain.EncryptedMessage
	if err := c.do(ctx, "list_messages", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitRoom creates room with the creator's record. The ledger assigns the
// id when room.ID is empty.
func (c *HTTP) SubmitRoom(
	ctx context.Context,
	room domain.Room,
	creatorRecord domain.WrappedKeyRecord,
) (domain.Room, error) {
	var out domain.Room
	err := c.do(ctx, "create_room", http.MethodPost, "/rooms", CreateRoomBody{
		ID:      room.ID,
		Name:    room.Name,
		Creator: room.Creator,
		Record:  crypto.B64(creatorRecord),
	}, &out)
	if err != nil {
		return domain.Room{}, err
	}
	return out, nil
}

// SubmitInvite adds invitee to room with record.
func (c *HTTP) SubmitInvite(
	ctx context.Context,
	room domain.RoomID,
	inviter domain.Address,
	invitee domain.Address,
	record domain.WrappedKeyRecord,
) error {
	return c.do(ctx, "add_member", http.MethodPost, roomPath(room)+"/members", InviteBody{
		Inviter: inviter,
		Member:  invitee,
		Record:  crypto.B64(record),
	}, nil)
}

// SubmitMessage posts an encrypted message and returns it as stored.
func (c *HTTP) SubmitMessage(ctx context.Context, msg domain.EncryptedMessage) (domain.EncryptedMessage, error) {
	var out domain.EncryptedMessage
	err := c.do(ctx, "send_message", http.MethodPost, roomPath(msg.RoomID)+"/messages", MessageBody{
		Sender:   msg.Sender,
		Envelope: msg.Envelope,
	}, &out)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	return out, nil
}

func (c *HTTP) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	ctx, span := observability.StartSpan(ctx, "ledger."+op,
		attribute.String("http.method", method),
		attribute.String("ledger.path", path),
	)
	start := time.Now()
	defer func() {
		c.Metrics.RecordRequest("ledger", op, err == nil, time.Since(start))
		observability.EndSpan(span, err)
	}()

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return fmt.Errorf("%w: ledger %s %s: %w", domain.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return statusError(method, path, resp)
	}
	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: ledger %s %s: read body: %w", domain.ErrUnavailable, method, path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

func statusError(method, path string, resp *http.Response) error {
	var eb ErrorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)
	detail := resp.Status
	if eb.Error != "" {
		detail += ": " + eb.Error
	}

	var kind error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = domain.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		kind = ErrConflict
	case resp.StatusCode == http.StatusForbidden:
		kind = domain.ErrNotMember
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		kind = domain.ErrUnavailable
	default:
		return fmt.Errorf("ledger %s %s: %s", method, path, detail)
	}
	return fmt.Errorf("%w: ledger %s %s: %s", kind, method, path, detail)
}

func decodeField(name, s string) ([]byte, error) {
	b, err := strictB64.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not canonical base64: %v", ErrMalformedResponse, name, err)
	}
	return b, nil
}

func (c *HTTP) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

var _ domain.LedgerClient = (*HTTP)(nil)
