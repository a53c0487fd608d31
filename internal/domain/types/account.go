package types

// AccountProfile records which address this client last used against a ledger.
type AccountProfile struct {
	LedgerURL   string      `json:"ledger_url"`
	Address     Address     `json:"address"`
	AuthMethod  AuthMethod  `json:"auth_method"`
	Fingerprint Fingerprint `json:"fingerprint,omitempty"`
	Registered  bool        `json:"registered"`
}
