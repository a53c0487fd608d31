package commands

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"suichat/internal/ledgerserver"
)

const testPass = "Correct-Horse-9"

func newLedger(t *testing.T) string {
	t.Helper()
	st, err := ledgerserver.OpenStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(ledgerserver.New(st, ledgerserver.DefaultConfig(), nil, nil))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRoot()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "suichat %s", strings.Join(args, " "))
	return out
}

func field(t *testing.T, out, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(v)
		}
	}
	t.Fatalf("no %q in output %q", prefix, out)
	return ""
}

func TestCLI_RoomLifecycle(t *testing.T) {
	ledgerURL := newLedger(t)
	aliceHome, bobHome := t.TempDir(), t.TempDir()
	alice := []string{"--home", aliceHome, "--ledger", ledgerURL, "-p", testPass}
	bob := []string{"--home", bobHome, "--ledger", ledgerURL, "-p", testPass}
	with := func(base []string, args ...string) []string {
		return append(append([]string{}, base...), args...)
	}

	mustRun(t, with(alice, "wallet", "init")...)
	out := mustRun(t, with(bob, "wallet", "init")...)
	bobAddr := field(t, out, "Address:")
	require.True(t, strings.HasPrefix(bobAddr, "0x"))
	require.Equal(t, bobAddr+"\n", mustRun(t, with(bob, "wallet", "address")...))

	out = mustRun(t, with(alice, "fingerprint")...)
	require.Equal(t, "false", field(t, out, "Registered on "+ledgerURL+":"))
	mustRun(t, with(alice, "register")...)
	out = mustRun(t, with(alice, "fingerprint")...)
	require.Equal(t, "true", field(t, out, "Registered on "+ledgerURL+":"))
	out = mustRun(t, with(bob, "register")...)
	require.Contains(t, out, bobAddr)

	out = mustRun(t, with(alice, "room", "create", "general")...)
	roomID := field(t, out, "ID:")

	out = mustRun(t, with(bob, "room", "info", roomID)...)
	require.Equal(t, "general", field(t, out, "Name:"))
	require.Equal(t, roomID, field(t, out, "ID:"))

	// Bob is not a member yet.
	_, err := run(t, with(bob, "send", roomID, "hi")...)
	require.Error(t, err)

	mustRun(t, with(alice, "room", "invite", roomID, strings.ToUpper(bobAddr))...)
	mustRun(t, with(alice, "send", roomID, "hello bob")...)
	mustRun(t, with(bob, "send", roomID, "hi alice")...)

	out = mustRun(t, with(bob, "messages", roomID)...)
	require.Contains(t, out, "hello bob")
	require.Contains(t, out, bobAddr+": hi alice")
}

func TestCLI_WalletRequiresPassphrase(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, "--home", home, "wallet", "init")
	require.Error(t, err)

	_, err = run(t, "--home", home, "-p", "weak", "wallet", "init")
	require.Error(t, err)

	mustRun(t, "--home", home, "-p", testPass, "wallet", "init")
	_, err = run(t, "--home", home, "-p", testPass, "wallet", "init")
	require.Error(t, err)
}

func TestCLI_FingerprintStable(t *testing.T) {
	home := t.TempDir()
	mustRun(t, "--home", home, "-p", testPass, "wallet", "init")
	a := mustRun(t, "--home", home, "-p", testPass, "fingerprint")
	b := mustRun(t, "--home", home, "-p", testPass, "fingerprint")
	require.Equal(t, a, b)
	require.NotEmpty(t, field(t, a, "Fingerprint:"))

	_, err := run(t, "--home", home, "-p", "Wrong-Horse-9", "fingerprint")
	require.Error(t, err)
}
