package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"suichat/internal/domain"
)

// room create <name> | room info <room-id> | room invite <room-id> <address>.
func roomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Create rooms and invite members",
	}
	cmd.AddCommand(roomCreateCmd(), roomInfoCmd(), roomInviteCmd())
	return cmd
}

func roomCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a room and store your wrapped room key on the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := keySource()
			if err != nil {
				return err
			}
			room, err := appCtx.Rooms.CreateRoom(cmd.Context(), src, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Room %q created.\nID: %s\n", room.Name, room.ID)
			return nil
		},
	}
}

func roomInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <room-id>",
		Short: "Show room metadata from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := appCtx.Ledger.GetRoom(cmd.Context(), domain.RoomID(args[0]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %s\n", room.ID)
			fmt.Fprintf(out, "Name: %s\n", room.Name)
			fmt.Fprintf(out, "Creator: %s\n", room.Creator)
			fmt.Fprintf(out, "Created: %s\n", time.Unix(room.CreatedUTC, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}
}

func roomInviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invite <room-id> <address>",
		Short: "Wrap the room key for a registered member and submit the invite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := keySource()
			if err != nil {
				return err
			}
			room := domain.RoomID(args[0])
			invitee := domain.Address(args[1]).Normalize()

			rec, err := appCtx.Invites.Invite(cmd.Context(), src, room, invitee)
			if err != nil {
				return err
			}
			// Cached by keySource: no second signature or salt request.
			_, inviter, err := src.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			if err := appCtx.Ledger.SubmitInvite(cmd.Context(), room, inviter, invitee, rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invited %s to %s\n", invitee, room)
			return nil
		},
	}
}
