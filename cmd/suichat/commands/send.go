package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"suichat/internal/domain"
)

// send <room-id> <message>: encrypt and post a message to a room.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <room-id> <message>",
		Short: "Encrypt and send a message to a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := keySource()
			if err != nil {
				return err
			}
			msg, err := appCtx.Messages.SendMessage(cmd.Context(), src, domain.RoomID(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", msg.ID)
			return nil
		},
	}
}
