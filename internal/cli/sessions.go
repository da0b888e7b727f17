package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/minute-tui/minute/internal/output"
	"github.com/minute-tui/minute/internal/store"
)

// NewSessionsCmd manages stored chat conversations from the command line.
func NewSessionsCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage chat sessions",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			sessions, err := deps.Client.ListChatSessions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				formatter.Info("No sessions found")
				return nil
			}
			formatter.SessionListHeader(len(sessions))
			for _, s := range sessions {
				formatter.SessionListItem(s.SessionID, s.Title, s.LastMessageAt, len(s.Messages))
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 50, "maximum sessions to list")

	deleteCmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a stored chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stderr)

			if err := deps.Client.DeleteChatSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			// the local mirror is best-effort; a stale row disappears on
			// the next list refresh anyway
			if mirror, err := store.Open(store.DefaultDBPath()); err == nil {
				_ = mirror.DeleteSession(args[0])
				mirror.Close()
			}
			formatter.Success("Deleted " + args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(deleteCmd)
	return cmd
}
