package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// diagramExtensions are offered when completing a diagram argument.
var diagramExtensions = []string{"lvl", "toml", "yaml", "yml", "json"}

// completeDiagram completes the first positional argument with diagram files.
func completeDiagram(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return diagramExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completionGenerators writes the completion script for each supported shell.
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for energylevels.

Diagram arguments complete to .lvl, .toml, .yaml and .json files.

  $ source <(energylevels completion bash)
  $ energylevels completion zsh > "${fpath[1]}/_energylevels"
  $ energylevels completion fish > ~/.config/fish/completions/energylevels.fish
  PS> energylevels completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
