package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minute-tui/minute/internal/export"
	"github.com/minute-tui/minute/internal/meeting"
	"github.com/minute-tui/minute/internal/output"
)

// NewExportCmd converts a saved structure JSON into a Word document.
func NewExportCmd(deps *Dependencies) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <structure.json>",
		Short: "Export meeting notes as a .docx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stderr)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var s meeting.Structure
			if err := json.Unmarshal(data, &s); err != nil {
				return err
			}

			if outPath == "" {
				outPath = strings.TrimSuffix(args[0], ".json") + ".docx"
			}
			if err := export.ToDocx(&s, outPath); err != nil {
				return err
			}
			formatter.Success("Exported " + outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (defaults next to the input)")

	return cmd
}
