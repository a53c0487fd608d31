package ledgerserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"suichat/internal/domain"
	"suichat/internal/ledger"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	st, err := OpenStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st, cfg, nil, nil)
}

func b64(n int, fill byte) string {
	return base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{fill}, n))
}

func call(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createRoom(t *testing.T, s *Server, creator domain.Address) domain.Room {
	t.Helper()
	rec := call(t, s, http.MethodPost, "/rooms", ledger.CreateRoomBody{
		Name: "general", Creator: creator, Record: b64(recordSize, 1),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var room domain.Room
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&room))
	return room
}

func TestPublicKey_Validation(t *testing.T) {
	s := newTestServer(t, Config{})

	for _, n := range []int{0, 31, 33} {
		rec := call(t, s, http.MethodPut, "/members/0xa/public-key", ledger.PublicKeyBody{PublicKey: b64(n, 2)})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
	rec := call(t, s, http.MethodPut, "/members/0xa/public-key", ledger.PublicKeyBody{PublicKey: "not base64"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, s, http.MethodGet, "/members/0xa/public-key", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, s, http.MethodPut, "/members/0xa/public-key", ledger.PublicKeyBody{PublicKey: b64(32, 2)})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(t, s, http.MethodGet, "/members/0xa/public-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body ledger.PublicKeyBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, b64(32, 2), body.PublicKey)
}

func TestCreateRoom_CreatorRecordWrittenWithRoom(t *testing.T) {
	s := newTestServer(t, Config{})
	room := createRoom(t, s, "0xcreator")
	require.NotEmpty(t, room.ID)

	rec := call(t, s, http.MethodGet, "/rooms/"+room.ID.String()+"/keys/0xcreator", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, s, http.MethodPost, "/rooms", ledger.CreateRoomBody{
		ID: room.ID, Name: "dup", Creator: "0xcreator", Record: b64(recordSize, 1),
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateRoom_BadRecordCreatesNothing(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := call(t, s, http.MethodPost, "/rooms", ledger.CreateRoomBody{
		ID: "r1", Name: "general", Creator: "0xc", Record: b64(79, 1),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, s, http.MethodGet, "/rooms/r1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddMember_Rules(t *testing.T) {
	s := newTestServer(t, Config{})
	room := createRoom(t, s, "0xalice")
	path := "/rooms/" + room.ID.String() + "/members"

	rec := call(t, s, http.MethodPost, path, ledger.InviteBody{Inviter: "0xmallory", Member: "0xbob", Record: b64(recordSize, 3)})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, s, http.MethodPost, path, ledger.InviteBody{Inviter: "0xalice", Member: "0xbob", Record: b64(recordSize, 3)})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(t, s, http.MethodPost, path, ledger.InviteBody{Inviter: "0xalice", Member: "0xbob", Record: b64(recordSize, 4)})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, s, http.MethodPost, "/rooms/missing/members", ledger.InviteBody{Inviter: "0xalice", Member: "0xbob", Record: b64(recordSize, 3)})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMessages_MembersOnlyAndOrdered(t *testing.T) {
	s := newTestServer(t, Config{})
	var tick int64
	s.now = func() time.Time { tick++; return time.UnixMilli(tick) }
	room := createRoom(t, s, "0xalice")
	path := "/rooms/" + room.ID.String() + "/messages"

	rec := call(t, s, http.MethodPost, path, ledger.MessageBody{Sender: "0xeve", Envelope: "AQ=="})
	require.Equal(t, http.StatusForbidden, rec.Code)

	for _, env := range []string{"m1", "m2", "m3"} {
		rec := call(t, s, http.MethodPost, path, ledger.MessageBody{Sender: "0xalice", Envelope: env})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = call(t, s, http.MethodGet, path+"?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []domain.EncryptedMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msgs))
	require.Len(t, msgs, 2)
	require.Equal(t, "m2", msgs[0].Envelope)
	require.Equal(t, "m3", msgs[1].Envelope)
	require.Less(t, msgs[0].Timestamp, msgs[1].Timestamp)

	rec = call(t, s, http.MethodGet, path+"?limit=zero", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimitRPS: 0.001, RateLimitBurst: 2})
	s.now = func() time.Time { return time.Unix(1000, 0) }

	codes := []int{}
	for range 3 {
		codes = append(codes, call(t, s, http.MethodGet, "/rooms/x", nil).Code)
	}
	require.Equal(t, []int{http.StatusNotFound, http.StatusNotFound, http.StatusTooManyRequests}, codes)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})
	call(t, s, http.MethodGet, "/rooms/x", nil)
	rec := call(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	s := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodPost, "/rooms", strings.NewReader(`{"name":"x","creator":"0xa","record":"","extra":1}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddresses_CaseInsensitive(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := call(t, s, http.MethodPut, "/members/0xABCD/public-key", ledger.PublicKeyBody{PublicKey: b64(32, 2)})
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = call(t, s, http.MethodGet, "/members/0xabcd/public-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pk ledger.PublicKeyBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pk))
	require.Equal(t, domain.Address("0xabcd"), pk.Address)

	room := createRoom(t, s, "0xAlice")
	require.Equal(t, domain.Address("0xalice"), room.Creator)

	rec = call(t, s, http.MethodPost, "/rooms/"+room.ID.String()+"/members",
		ledger.InviteBody{Inviter: "0xALICE", Member: "0xBob", Record: b64(recordSize, 3)})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(t, s, http.MethodGet, "/rooms/"+room.ID.String()+"/keys/0xbob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
