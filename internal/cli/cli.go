// Package cli implements the soulcard command-line interface.
//
// # Commands
//
//   - serve: run the web generator
//   - export: render a card (or a CSV of cards) to PNG files
//   - publish: upload a card and record it in the gallery
//   - gallery: list published agents
//   - presets: show the theme color presets
//
// All commands accept --config and --verbose. The logger is carried through
// context.Context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the values printed by --version, normally injected via
// ldflags.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

type globals struct {
	verbose    bool
	configPath string
}

// Execute runs the CLI with ctx.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:          "soulcard",
		Short:        "Soul ID card generator",
		Long:         `soulcard renders holographic ID cards for AI agents, exports them as PNG and publishes them to a shared gallery.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("soulcard %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "config file (default ./soulcard.toml if present)")

	root.AddCommand(newServeCmd(g))
	root.AddCommand(newExportCmd(g))
	root.AddCommand(newPublishCmd(g))
	root.AddCommand(newGalleryCmd(g))
	root.AddCommand(newPresetsCmd())
	return root
}
