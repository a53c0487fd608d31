package store

import (
	"path/filepath"
	"strings"
	"sync"

	"suichat/internal/domain"
)

const accountsFile = "accounts.json"

// AccountFileStore persists per-ledger account profiles to disk.
type AccountFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewAccountFileStore returns an AccountFileStore rooted at dir.
func NewAccountFileStore(dir string) *AccountFileStore {
	return &AccountFileStore{dir: dir}
}

// SaveAccountProfile stores or replaces the profile for its (ledger, address).
func (s *AccountFileStore) SaveAccountProfile(profile domain.AccountProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, accountsFile)
	profiles := make(map[string]domain.AccountProfile)
	if err := readJSON(path, &profiles); err != nil {
		return err
	}
	profiles[accountKey(profile.LedgerURL, profile.Address)] = profile
	return writeJSON(path, profiles)
}

// LoadAccountProfile retrieves the profile for (ledgerURL, address).
func (s *AccountFileStore) LoadAccountProfile(
	ledgerURL string,
	address domain.Address,
) (domain.AccountProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, accountsFile)
	profiles := make(map[string]domain.AccountProfile)
	if err := readJSON(path, &profiles); err != nil {
		return domain.AccountProfile{}, false, err
	}
	profile, ok := profiles[accountKey(ledgerURL, address)]
	return profile, ok, nil
}

func accountKey(ledgerURL string, address domain.Address) string {
	return strings.TrimRight(ledgerURL, "/") + "|" + address.Normalize().String()
}

var _ domain.AccountStore = (*AccountFileStore)(nil)
