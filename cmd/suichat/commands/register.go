package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"suichat/internal/crypto"
)

// register: publish the derived public key to the ledger.
func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Publish your encryption public key to the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := keySource()
			if err != nil {
				return err
			}
			pub, addr, err := appCtx.Identity.Publish(cmd.Context(), src)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (fingerprint %s)\n", addr, crypto.Fingerprint(pub[:]))
			return nil
		},
	}
}
