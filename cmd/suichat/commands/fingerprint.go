package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"suichat/internal/crypto"
	"suichat/internal/util/memzero"
)

// fingerprint: derive the encryption keypair and print its public fingerprint.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Show the fingerprint of your derived encryption key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := keySource()
			if err != nil {
				return err
			}
			kp, addr, err := appCtx.Identity.Derive(cmd.Context(), src)
			if err != nil {
				return err
			}
			memzero.Zero(kp.SecretKey[:])

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address: %s\n", addr)
			fmt.Fprintf(out, "Public key: %s\n", crypto.B64(kp.PublicKey[:]))
			fmt.Fprintf(out, "Fingerprint: %s\n", crypto.Fingerprint(kp.PublicKey[:]))

			profile, ok, err := appCtx.Accounts.LoadAccountProfile(appCtx.Config.LedgerURL, addr)
			if err != nil {
				return err
			}
			registered := ok && profile.Registered && profile.Fingerprint == crypto.Fingerprint(kp.PublicKey[:])
			fmt.Fprintf(out, "Registered on %s: %t\n", appCtx.Config.LedgerURL, registered)
			return nil
		},
	}
}
