// Package store provides file-based persistence for suichat's local state.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk with atomic temp-file-then-rename writes.
// All methods are concurrency-safe via internal locking. Files live under the
// user's configured home directory.
//
// The package includes stores for:
//   - Account profiles per ledger (AccountFileStore)
//   - Wrapped room key records (RoomKeyFileStore)
//   - The development wallet seed, passphrase-encrypted (WalletFileStore)
//
// Derived encryption keypairs and unwrapped room keys are never written here.
package store
