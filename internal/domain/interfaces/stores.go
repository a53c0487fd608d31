package interfaces

import domaintypes "suichat/internal/domain/types"

// AccountStore persists per-ledger account profiles.
type AccountStore interface {
	SaveAccountProfile(profile domaintypes.AccountProfile) error
	LoadAccountProfile(
		ledgerURL string,
		address domaintypes.Address,
	) (domaintypes.AccountProfile, bool, error)
}

// RoomKeyStore caches wrapped key records. Only ciphertext is stored.
type RoomKeyStore interface {
	SaveWrappedKey(
		room domaintypes.RoomID,
		member domaintypes.Address,
		record domaintypes.WrappedKeyRecord,
	) error
	LoadWrappedKey(
		room domaintypes.RoomID,
		member domaintypes.Address,
	) (domaintypes.WrappedKeyRecord, bool, error)
}

// WalletStore persists the development wallet seed encrypted under a passphrase.
type WalletStore interface {
	SaveWallet(passphrase string, priv domaintypes.Ed25519Private) error
	LoadWallet(passphrase string) (domaintypes.Ed25519Private, error)
}
