package cli

import (
	"github.com/spf13/cobra"
)

func newPublishCmd(g *globals) *cobra.Command {
	var flags *cardFlags
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a card image and record the agent in the gallery",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := flags.apply(a.form); err != nil {
				return err
			}
			prog := newProgress(a.logger)
			res := a.form.Publish(ctx)
			if err := printResult(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if res.OK() {
				prog.done("Published " + res.RecordID)
			}
			return nil
		},
	}
	flags = bindCardFlags(cmd)
	return cmd
}
