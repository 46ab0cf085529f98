package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for relayarr.

To load completions:

Bash:
  $ source <(relayarr completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ relayarr completion bash > /etc/bash_completion.d/relayarr
  # macOS:
  $ relayarr completion bash > $(brew --prefix)/etc/bash_completion.d/relayarr

Zsh:
  $ source <(relayarr completion zsh)
  # To load completions for each session, execute once:
  $ relayarr completion zsh > "${fpath[1]}/_relayarr"

Fish:
  $ relayarr completion fish | source
  # To load completions for each session, execute once:
  $ relayarr completion fish > ~/.config/fish/completions/relayarr.fish

PowerShell:
  PS> relayarr completion powershell | Out-String | Invoke-Expression
  # To load completions for each session, execute once:
  PS> relayarr completion powershell > relayarr.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
