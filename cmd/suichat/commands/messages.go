package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"suichat/internal/domain"
)

// messages <room-id>: fetch and decrypt the latest messages of a room.
func messagesCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "messages <room-id>",
		Aliases: []string{"recv"},
		Short:   "Fetch and decrypt the latest messages of a room",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := keySource()
			if err != nil {
				return err
			}
			msgs, err := appCtx.Messages.ListMessages(cmd.Context(), src, domain.RoomID(args[0]), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintln(out, "no messages")
				return nil
			}
			for _, m := range msgs {
				ts := time.UnixMilli(m.Timestamp).UTC().Format(time.RFC3339)
				fmt.Fprintf(out, "[%s] %s: %s\n", ts, m.Sender, m.Text)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of messages to fetch")
	return cmd
}
