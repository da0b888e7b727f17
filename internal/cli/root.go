package cli

import (
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minute-tui/minute/config"
	"github.com/minute-tui/minute/internal/api"
	"github.com/minute-tui/minute/internal/app"
	"github.com/minute-tui/minute/internal/version"
)

type Dependencies struct {
	Config *config.Config
	Client *api.Client
}

// NewRootCmd builds the command tree. Running the bare command starts the
// interactive TUI.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minute",
		Short: "Turn meeting audio into navigable notes",
		Long:  "Records or ingests meeting audio, turns it into hierarchical AI meeting notes, and lets you chat with everything you have processed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(app.New(deps.Config), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewExportCmd(deps))
	rootCmd.AddCommand(NewSessionsCmd(deps))

	return rootCmd
}
