package cli

import (
	"github.com/spf13/cobra"

	"github.com/youruser/soulcard/internal/card"
	"github.com/youruser/soulcard/internal/web"
)

func newServeCmd(g *globals) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web card generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g.configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			// Network requests may only reference http(s) photos.
			a.mount(card.NewRemotePhotoLoader())

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			s := &web.Server{Form: a.form, Gallery: a.gallery, Logger: a.logger}
			if a.backend != nil {
				s.ObjectsDir = a.backend.ObjectsDir
			}
			return s.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
