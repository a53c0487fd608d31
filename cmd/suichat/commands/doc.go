// Package commands implements the suichat CLI commands (wallet, register,
// fingerprint, room, send, messages) on top of internal/app.
//
// Persistent flags (e.g., --home, --passphrase, --ledger, --id-token) are
// parsed by the root command and used to construct the app wiring.
package commands
