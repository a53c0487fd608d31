package store

// WithFastKDF lowers the scrypt cost so tests run quickly.
func (s *WalletFileStore) WithFastKDF() *WalletFileStore {
	s.kdf = kdfParams{N: 1 << 10, R: 8, P: 1}
	return s
}
