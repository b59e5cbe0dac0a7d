package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apperrors "github.com/youruser/soulcard/internal/errors"
	"github.com/youruser/soulcard/internal/gallery"
)

func newGalleryCmd(g *globals) *cobra.Command {
	var opt gallery.FilterOptions
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "gallery [id]",
		Short: "List published agents, or show one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g.configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			if a.gallery == nil {
				return apperrors.New(apperrors.ErrCodeConfigMissing, "gallery backend is not configured")
			}
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				rec, err := a.gallery.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(w, rec)
				}
				fmt.Fprintln(w, styleTitle.Render(rec.Name))
				printKV(w, "ID", rec.ID)
				printKV(w, "Model", rec.Model)
				printKV(w, "Serial", rec.SerialNumber)
				printKV(w, "Soul", rec.SoulText)
				printKV(w, "Color", rec.ThemeColor)
				printKV(w, "Image", styleLink.Render(rec.ImageURL))
				return nil
			}

			recs, err := a.gallery.List(ctx, opt)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(w, recs)
			}
			if len(recs) == 0 {
				printWarning(w, "No published cards")
				return nil
			}
			fmt.Fprintln(w, agentTable(recs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opt.FreeWords, "query", "q", "", "words to match in name, soul text, model or serial")
	cmd.Flags().StringSliceVar(&opt.Models, "model", nil, "only these models")
	cmd.Flags().StringSliceVar(&opt.ThemeColors, "color", nil, "only these theme colors")
	cmd.Flags().IntVarP(&opt.Limit, "limit", "n", 20, "maximum rows (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
