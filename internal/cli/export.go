package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/youruser/soulcard/internal/card"
	"github.com/youruser/soulcard/internal/export"
)

func newExportCmd(g *globals) *cobra.Command {
	var out, csvPath string
	var flags *cardFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a card to soul-id-card-<serial>.png",
		Long: `Render a card to PNG at the configured scale (2x by default).

With --csv every row of the file (columns name, type, serial, soul_text,
theme_color, image_url) is exported; card flags then override each row.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if out == "" {
				out = a.cfg.Export.Dir
			}
			saver := export.DirSaver{Dir: out}
			w := cmd.OutOrStdout()

			if csvPath == "" {
				if err := flags.apply(a.form); err != nil {
					return err
				}
				return printResult(w, a.form.Export(ctx, saver))
			}

			rows, err := card.LoadCSV(csvPath)
			if err != nil {
				return err
			}
			prog := newProgress(a.logger)
			var failed int
			for _, d := range rows {
				a.form.Load(d)
				if err := flags.apply(a.form); err != nil {
					return err
				}
				if err := printResult(w, a.form.Export(ctx, saver)); err != nil {
					failed++
				}
			}
			prog.done(fmt.Sprintf("Exported %d of %d cards", len(rows)-failed, len(rows)))
			if failed > 0 {
				return fmt.Errorf("%d of %d exports failed", failed, len(rows))
			}
			return nil
		},
	}
	flags = bindCardFlags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "export every card in a CSV file")
	return cmd
}
