package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog for structured logging.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a structured logger at level. An unknown level falls back
// to info.
func NewLogger(service, level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(output).Level(lvl).With().
		Timestamp().
		Str("service", service).
		Logger()

	return &Logger{logger: logger}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *Logger) *Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// Zerolog exposes the underlying logger.
func (l *Logger) Zerolog() zerolog.Logger { return l.logger }

// WithRoom adds room_id context to logger.
func (l *Logger) WithRoom(roomID string) *Logger {
	return &Logger{
		logger: l.logger.With().Str("room_id", roomID).Logger(),
	}
}

// WithAddress adds address context to logger.
func (l *Logger) WithAddress(address string) *Logger {
	return &Logger{
		logger: l.logger.With().Str("address", address).Logger(),
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// KeyDerived logs a completed derivation by method and public key fingerprint.
func (l *Logger) KeyDerived(method, address, fingerprint string) {
	l.logger.Debug().
		Str("auth_method", method).
		Str("address", address).
		Str("fingerprint", fingerprint).
		Msg("encryption key derived")
}

// DecryptFailed logs a message that could not be decrypted.
func (l *Logger) DecryptFailed(roomID, messageID, sender string) {
	l.logger.Warn().
		Str("room_id", roomID).
		Str("message_id", messageID).
		Str("sender", sender).
		Msg("message decryption failed")
}

// InviteFailed logs an invite chain that stopped at step.
func (l *Logger) InviteFailed(roomID, invitee, step string, err error) {
	l.logger.Error().
		Str("room_id", roomID).
		Str("invitee", invitee).
		Str("step", step).
		Err(err).
		Msg("invite failed")
}

// InviteCompleted logs a successful re-wrap for invitee.
func (l *Logger) InviteCompleted(roomID, invitee, fingerprint string) {
	l.logger.Info().
		Str("room_id", roomID).
		Str("invitee", invitee).
		Str("invitee_fingerprint", fingerprint).
		Msg("room key wrapped for invitee")
}

// RequestServed logs one HTTP request handled by the dev ledger.
func (l *Logger) RequestServed(method, route string, status int, elapsed time.Duration) {
	l.logger.Info().
		Str("method", method).
		Str("route", route).
		Int("status", status).
		Float64("elapsed_ms", float64(elapsed.Microseconds())/1000).
		Msg("request served")
}
