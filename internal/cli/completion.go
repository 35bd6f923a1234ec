package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints shell completion scripts. Card IDs are not
// completed because listing them would open the card store.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the nametag command, its subcommands
and flags such as --format, --mode and --preset.

  bash:        source <(nametag completion bash)
  zsh:         nametag completion zsh > "${fpath[1]}/_nametag"
  fish:        nametag completion fish > ~/.config/fish/completions/nametag.fish
  powershell:  nametag completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
