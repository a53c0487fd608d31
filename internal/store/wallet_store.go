package store

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"suichat/internal/domain"
	"suichat/internal/util/memzero"
)

const (
	walletFilename = "wallet.json.enc"
	walletKind     = "ed25519-seed"
)

// ErrNoWallet is returned by LoadWallet when no wallet has been created.
var ErrNoWallet = errors.New("no wallet found; run `suichat wallet init`")

// WalletFileStore persists the development wallet seed encrypted under a
// passphrase.
type WalletFileStore struct {
	dir string
	mu  sync.Mutex
	kdf kdfParams
}

// NewWalletFileStore returns a WalletFileStore rooted at dir.
func NewWalletFileStore(dir string) *WalletFileStore {
	return &WalletFileStore{dir: dir, kdf: defaultKDF()}
}

// SaveWallet encrypts the 32-byte seed of priv and writes it to disk.
func (s *WalletFileStore) SaveWallet(passphrase string, priv domain.Ed25519Private) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := ed25519.PrivateKey(priv[:]).Seed()
	defer memzero.Zero(seed)

	blob, err := seal(walletKind, passphrase, seed, s.kdf)
	if err != nil {
		return fmt.Errorf("encrypt wallet: %w", err)
	}
	return writeFile(filepath.Join(s.dir, walletFilename), blob)
}

// LoadWallet reads and decrypts the wallet.
func (s *WalletFileStore) LoadWallet(passphrase string) (domain.Ed25519Private, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var priv domain.Ed25519Private
	b, err := readFile(filepath.Join(s.dir, walletFilename))
	if err != nil {
		return priv, err
	}
	if b == nil {
		return priv, ErrNoWallet
	}
	seed, err := open(walletKind, passphrase, b)
	if err != nil {
		return priv, err
	}
	defer memzero.Zero(seed)
	if len(seed) != ed25519.SeedSize {
		return priv, fmt.Errorf("wallet seed has %d bytes", len(seed))
	}
	copy(priv[:], ed25519.NewKeyFromSeed(seed))
	return priv, nil
}

// Exists reports whether a wallet file is present.
func (s *WalletFileStore) Exists() (bool, error) {
	b, err := readFile(filepath.Join(s.dir, walletFilename))
	return b != nil, err
}

var _ domain.WalletStore = (*WalletFileStore)(nil)
