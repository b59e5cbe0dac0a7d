package cli

import (
	"github.com/spf13/cobra"

	"github.com/youruser/soulcard/internal/card"
	"github.com/youruser/soulcard/internal/form"
)

// cardFlags are the card fields settable from the command line. Only flags
// the user actually passed override the defaults.
type cardFlags struct {
	cmd    *cobra.Command
	data   card.Data
	preset string
}

func bindCardFlags(cmd *cobra.Command) *cardFlags {
	f := &cardFlags{cmd: cmd}
	fl := cmd.Flags()
	fl.StringVar(&f.data.Name, "name", "", "agent name")
	fl.StringVar(&f.data.Type, "type", "", "agent type shown as the class")
	fl.StringVar(&f.data.Serial, "serial", "", "serial number (also names the file)")
	fl.StringVar(&f.data.SoulText, "soul", "", "soul text quote")
	fl.StringVar(&f.data.ThemeColor, "color", "", "theme color as #RRGGBB")
	fl.StringVar(&f.data.ImageURL, "image", "", "photo URL or local path")
	fl.StringVar(&f.preset, "preset", "", "theme color preset name (overrides --color)")
	return f
}

func (f *cardFlags) update() form.Update {
	var u form.Update
	pick := func(name string, v *string) *string {
		if f.cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	u.Name = pick("name", &f.data.Name)
	u.Type = pick("type", &f.data.Type)
	u.Serial = pick("serial", &f.data.Serial)
	u.SoulText = pick("soul", &f.data.SoulText)
	u.ThemeColor = pick("color", &f.data.ThemeColor)
	u.ImageURL = pick("image", &f.data.ImageURL)
	u.Preset = pick("preset", &f.preset)
	return u
}

// apply pushes the passed flags into the controller.
func (f *cardFlags) apply(c *form.Controller) error {
	_, err := c.Apply(f.update())
	return err
}
