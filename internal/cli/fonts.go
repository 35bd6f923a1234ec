package cli

import (
	"github.com/spf13/cobra"

	"github.com/mwarrick/digital-business-card-sub004/pkg/fonts"
)

// fontsCommand reports which TrueType file backs each family and weight.
func (c *CLI) fontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "Show the fonts used for PNG and HTML measurement",
		Long: `Show which TrueType file backs each font family and weight.

Files are looked up in the configured font directory ($NAMETAG_FONT_DIR),
then among the system fonts. Families without a file fall back to a
built-in bitmap face, which changes PNG output but never fails a render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			r := fonts.NewResolver(fonts.WithDir(cfg.Fonts.Dir), fonts.WithSystemFonts(cfg.Fonts.System))
			if r.Dir() != "" {
				printKeyValue("Directory", r.Dir())
			}
			missing := 0
			for _, res := range r.Report() {
				name := res.Family
				if res.Bold {
					name += " bold"
				}
				if res.Err != nil {
					missing++
					printWarning("%-16s fallback (%v)", name, res.Err)
					continue
				}
				printSuccess("%-16s %s", name, res.Path)
			}
			if missing > 0 {
				printNewline()
				printNextStep("Point at a font directory", "NAMETAG_FONT_DIR=/path/to/fonts nametag fonts")
			}
			return nil
		},
	}
}
