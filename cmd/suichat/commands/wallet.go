package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"suichat/internal/wallet"
)

// wallet init | wallet address: manage the local development wallet.
func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the local development wallet",
	}
	cmd.AddCommand(walletInitCmd(), walletAddressCmd())
	return cmd
}

func walletInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a wallet and store it encrypted under the passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return errors.New("passphrase required (-p)")
			}
			ok, err := appCtx.Wallets.Exists()
			if err != nil {
				return err
			}
			if ok {
				return errors.New("wallet already exists")
			}
			w, err := wallet.Create(appCtx.Wallets, passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet created.\nAddress: %s\n", w.Address())
			return nil
		},
	}
}

func walletAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return errors.New("passphrase required (-p)")
			}
			w, err := wallet.Load(appCtx.Wallets, passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Address())
			return nil
		},
	}
}
