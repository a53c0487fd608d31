package commands

import (
	"github.com/spf13/cobra"

	"suichat/internal/app"
	"suichat/internal/domain"
	"suichat/internal/services/identity"
)

var (
	home       string
	passphrase string
	idToken    string
	appCtx     *app.Wire

	ledgerURL string
	saltURL   string
	logLevel  string
)

func Execute() error {
	root := newRoot()
	return root.Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "suichat",
		Short:        "Ledger-backed end-to-end encrypted group chat CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}

			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			if ledgerURL != "" {
				cfg.LedgerURL = ledgerURL
			}
			if saltURL != "" {
				cfg.SaltURL = saltURL
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			w, err := app.NewWire(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.suichat)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the local wallet")
	root.PersistentFlags().StringVar(&idToken, "id-token", "", "OIDC id token; derive keys from the federated login instead of the wallet")
	root.PersistentFlags().StringVar(&ledgerURL, "ledger", "", "ledger base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&saltURL, "salt-url", "", "salt service endpoint for --id-token")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		walletCmd(),
		fingerprintCmd(),
		registerCmd(),
		roomCmd(),
		sendCmd(),
		messagesCmd(),
	)
	return root
}

// keySource resolves --id-token or the unlocked wallet, once per command.
func keySource() (domain.KeySource, error) {
	src, err := appCtx.KeySource(passphrase, idToken)
	if err != nil {
		return nil, err
	}
	return identity.Cache(src), nil
}
