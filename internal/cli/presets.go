package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/soulcard/internal/form"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the theme color presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), presetTable(form.Presets))
		},
	}
}
