package ledgerserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"suichat/internal/domain"
	"suichat/internal/ledger"
	"suichat/internal/observability"
)

const (
	publicKeySize   = 32
	recordSize      = 80
	maxRequestBytes = 1 << 20
	maxEnvelopeLen  = 64 << 10

	// DefaultMessageLimit applies when a list request has no limit.
	DefaultMessageLimit = 50
	// MaxMessageLimit caps the limit query parameter.
	MaxMessageLimit = 500
)

var strictB64 = base64.StdEncoding.Strict()

// Config tunes the server.
type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// DefaultConfig is a limit generous enough for interactive use.
func DefaultConfig() Config {
	return Config{RateLimitRPS: 20, RateLimitBurst: 40}
}

// Server serves the ledger contract over HTTP.
type Server struct {
	store   *Store
	log     *observability.Logger
	metrics *observability.Metrics
	limiter *limiter
	now     func() time.Time
	router  *mux.Router
}

// New returns a server over store. logger and metrics may be nil.
func New(store *Store, cfg Config, logger *observability.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		store:   store,
		log:     observability.OrNop(logger),
		metrics: metrics,
		limiter: newLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 0),
		now:     time.Now,
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(s.accessLog, s.rateLimit)
	api.HandleFunc("/members/{address}/public-key", s.putPublicKey).Methods(http.MethodPut)
	api.HandleFunc("/members/{address}/public-key", s.getPublicKey).Methods(http.MethodGet)
	api.HandleFunc("/rooms", s.createRoom).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{id}", s.getRoom).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}/keys/{address}", s.getWrappedKey).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}/members", s.addMember).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{id}/messages", s.postMessage).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{id}/messages", s.listMessages).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) putPublicKey(w http.ResponseWriter, r *http.Request) {
	addr := domain.Address(mux.Vars(r)["address"]).Normalize()
	var body ledger.PublicKeyBody
	if !s.decode(w, r, &body) {
		return
	}
	pub, err := decodeExact("public_key", body.PublicKey, publicKeySize)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.PutPublicKey(r.Context(), addr, pub, s.now().Unix()); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getPublicKey(w http.ResponseWriter, r *http.Request) {
	addr := domain.Address(mux.Vars(r)["address"]).Normalize()
	pub, err := s.store.PublicKey(r.Context(), addr)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger.PublicKeyBody{
		Address:   addr,
		PublicKey: base64.StdEncoding.EncodeToString(pub),
	})
}

func (s *Server) createRoom(w http.ResponseWriter, r *http.Request) {
	var body ledger.CreateRoomBody
	if !s.decode(w, r, &body) {
		return
	}
	body.Creator = body.Creator.Normalize()
	if body.Creator == "" || strings.TrimSpace(body.Name) == "" {
		s.fail(w, fmt.Errorf("%w: name and creator are required", ErrInvalid))
		return
	}
	rec, err := decodeExact("record", body.Record, recordSize)
	if err != nil {
		s.fail(w, err)
		return
	}
	room := domain.Room{
		ID:         body.ID,
		Name:       body.Name,
		Creator:    body.Creator,
		CreatedUTC: s.now().Unix(),
	}
	if room.ID == "" {
		room.ID = domain.RoomID(uuid.NewString())
	}
	if err := s.store.CreateRoom(r.Context(), room, rec); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (s *Server) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.store.Room(r.Context(), domain.RoomID(mux.Vars(r)["id"]))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) getWrappedKey(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	room, member := domain.RoomID(vars["id"]), domain.Address(vars["address"]).Normalize()
	rec, err := s.store.WrappedKey(r.Context(), room, member)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ledger.RecordBody{
		RoomID: room,
		Member: member,
		Record: base64.StdEncoding.EncodeToString(rec),
	})
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	room := domain.RoomID(mux.Vars(r)["id"])
	var body ledger.InviteBody
	if !s.decode(w, r, &body) {
		return
	}
	body.Inviter, body.Member = body.Inviter.Normalize(), body.Member.Normalize()
	if body.Inviter == "" || body.Member == "" {
		s.fail(w, fmt.Errorf("%w: inviter and member are required", ErrInvalid))
		return
	}
	rec, err := decodeExact("record", body.Record, recordSize)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.AddMember(r.Context(), room, body.Inviter, body.Member, rec); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	room := domain.RoomID(mux.Vars(r)["id"])
	var body ledger.MessageBody
	if !s.decode(w, r, &body) {
		return
	}
	body.Sender = body.Sender.Normalize()
	if body.Sender == "" || body.Envelope == "" || len(body.Envelope) > maxEnvelopeLen {
		s.fail(w, fmt.Errorf("%w: sender and envelope are required", ErrInvalid))
		return
	}
	msg := domain.EncryptedMessage{
		ID:        domain.MessageID(uuid.NewString()),
		RoomID:    room,
		Sender:    body.Sender,
		Envelope:  body.Envelope,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.store.AddMessage(r.Context(), msg); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	room := domain.RoomID(mux.Vars(r)["id"])
	limit := DefaultMessageLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.fail(w, fmt.Errorf("%w: limit must be a positive integer", ErrInvalid))
			return
		}
		limit = min(n, MaxMessageLimit)
	}
	msgs, err := s.store.Messages(r.Context(), room, limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		s.fail(w, fmt.Errorf("%w: %v", ErrInvalid, err))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotMember):
		status = http.StatusForbidden
	case errors.Is(err, ErrConflict):
		status = http.StatusConflict
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error(err, "ledger request failed")
		msg = "internal error"
	}
	writeJSON(w, status, ledger.ErrorBody{Error: msg})
}

func decodeExact(field, s string, size int) ([]byte, error) {
	b, err := strictB64.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not canonical base64", ErrInvalid, field)
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: %s must be %d bytes, got %d", ErrInvalid, field, size, len(b))
	}
	return b, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.RecordHTTP(route, strconv.Itoa(rec.status))
		s.log.RequestServed(r.Method, route, rec.status, time.Since(start))
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !s.limiter.allow(host, s.now()) {
			s.metrics.RecordRateLimited()
			writeJSON(w, http.StatusTooManyRequests, ledger.ErrorBody{Error: "rate limited"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
