package main

import (
	"os"
	"strings"

	"github.com/jacksmith/barkly/internal/dogapi"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for barkly.

To load completions:

Bash:
  $ source <(barkly completion bash)

Zsh:
  $ barkly completion zsh > "${fpath[1]}/_barkly"

Fish:
  $ barkly completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeFavoriteURLs completes the first argument with saved favorites.
func completeFavoriteURLs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	store, err := openFavorites(false)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, u := range store.URLs() {
		if strings.HasPrefix(u.String(), toComplete) {
			completions = append(completions, u.String())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeMockModes completes --mock values.
func completeMockModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, m := range dogapi.MockModes {
		if strings.HasPrefix(m, strings.ToLower(toComplete)) {
			completions = append(completions, m)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
