package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"suichat/internal/crypto"
	"suichat/internal/services/identity"
)

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(home), cfg)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFile), []byte(
		"ledger_url: http://ledger.local:9000\nsalt_url: https://salt.example/get_salt\ntimeout: 3s\nlog_level: debug\n",
	), 0o600))

	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, "http://ledger.local:9000", cfg.LedgerURL)
	require.Equal(t, "https://salt.example/get_salt", cfg.SaltURL)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, home, cfg.Home)

	t.Setenv("SUICHAT_LEDGER_URL", "https://override.example")
	t.Setenv("SUICHAT_TIMEOUT", "250ms")
	cfg, err = LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, "https://override.example", cfg.LedgerURL)
	require.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SUICHAT_LEDGER_URL", "ftp://nope")
	_, err := LoadConfig(home)
	require.Error(t, err)

	t.Setenv("SUICHAT_LEDGER_URL", "http://ok")
	t.Setenv("SUICHAT_TIMEOUT", "soon")
	_, err = LoadConfig(home)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFile), []byte("ledger_url: [\n"), 0o600))
	t.Setenv("SUICHAT_TIMEOUT", "1s")
	_, err = LoadConfig(home)
	require.Error(t, err)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	cfg := DefaultConfig(home)
	cfg.SaltURL = "https://salt.example"
	require.NoError(t, cfg.Save())

	got, err := LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, cfg.SaltURL, got.SaltURL)
	require.Equal(t, cfg.Timeout, got.Timeout)
}

func TestWire_KeySourceSelection(t *testing.T) {
	w, err := NewWire(DefaultConfig(t.TempDir()), nil)
	require.NoError(t, err)

	_, err = w.KeySource("", "")
	require.ErrorIs(t, err, identity.ErrNoSource)

	_, err = w.KeySource("", "a.b.c")
	require.ErrorIs(t, err, ErrNoSaltService)
}

func TestNewWire_RunsCryptoGate(t *testing.T) {
	_, err := NewWire(DefaultConfig(t.TempDir()), nil)
	require.NoError(t, err)
	require.True(t, crypto.Ready())
}
