package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"suichat/internal/crypto"
	"suichat/internal/domain"
	"suichat/internal/idp"
	"suichat/internal/ledger"
	"suichat/internal/observability"
	"suichat/internal/services/identity"
	invitesvc "suichat/internal/services/invite"
	messagesvc "suichat/internal/services/message"
	roomsvc "suichat/internal/services/room"
	"suichat/internal/store"
	"suichat/internal/wallet"
)

// ErrNoSaltService is returned when an id token is given without a salt URL.
var ErrNoSaltService = errors.New("salt_url must be configured to use an id token")

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config  Config
	Log     *observability.Logger
	Metrics *observability.Metrics

	Accounts *store.AccountFileStore
	RoomKeys *store.RoomKeyFileStore
	Wallets  *store.WalletFileStore

	Ledger domain.LedgerClient
	Salt   domain.SaltProvider

	Identity domain.IdentityService
	Rooms    domain.RoomService
	Invites  domain.InviteService
	Messages domain.MessageService
}

// NewWire runs the crypto readiness check and constructs the dependency
// graph from cfg. Logs go to logOut (stderr when nil).
func NewWire(cfg Config, logOut io.Writer) (*Wire, error) {
	if !crypto.Ready() {
		if err := crypto.Init(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	log := observability.NewLogger("suichat", cfg.LogLevel, logOut)
	metrics := observability.NewMetrics(nil)

	// File-based stores
	accounts := store.NewAccountFileStore(cfg.Home)
	roomKeys := store.NewRoomKeyFileStore(cfg.Home)
	wallets := store.NewWalletFileStore(cfg.Home)

	// Collaborator clients
	lc := ledger.NewHTTP(cfg.LedgerURL, cfg.Timeout)
	lc.Metrics = metrics
	if cfg.HTTP != nil {
		lc.HTTP = cfg.HTTP
	}
	var salt domain.SaltProvider
	if cfg.SaltURL != "" {
		sc := idp.NewSaltClient(cfg.SaltURL, cfg.Timeout)
		sc.Metrics = metrics
		if cfg.HTTP != nil {
			sc.HTTP = cfg.HTTP
		}
		salt = sc
	}

	// High-level services
	ids := identity.New(lc, accounts, cfg.LedgerURL, log, metrics)
	rooms := roomsvc.New(ids, lc, roomKeys, log, metrics)

	return &Wire{
		Config:   cfg,
		Log:      log,
		Metrics:  metrics,
		Accounts: accounts,
		RoomKeys: roomKeys,
		Wallets:  wallets,
		Ledger:   lc,
		Salt:     salt,
		Identity: ids,
		Rooms:    rooms,
		Invites:  invitesvc.New(ids, lc, log, metrics),
		Messages: messagesvc.New(rooms, lc, log, metrics),
	}, nil
}

// KeySource picks how keys are derived: an id token selects the federated
// path, otherwise the local wallet is unlocked with passphrase.
func (w *Wire) KeySource(passphrase, idToken string) (domain.KeySource, error) {
	if idToken != "" {
		if w.Salt == nil {
			return nil, ErrNoSaltService
		}
		return identity.ClaimsSource{IDToken: idToken, Provider: w.Salt}, nil
	}
	if passphrase == "" {
		return nil, fmt.Errorf("%w: pass --id-token or unlock the wallet with -p", identity.ErrNoSource)
	}
	wl, err := wallet.Load(w.Wallets, passphrase)
	if err != nil {
		return nil, err
	}
	return identity.WalletSource{Signer: wl}, nil
}
