// Package main is the entry point for the barkly CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/barkly/internal/cli"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// logger is shared by every command. Warnings go to stderr; --verbose adds
// debug output.
var logger = newLogger(false)

var (
	rootVerbose bool
	rootNoColor bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "barkly",
	Short: "barkly - random dog photos and the ones you love",
	Long: `barkly fetches random dog photos from the dog.ceo API and keeps a
list of your favorites.

Favorites live in .barkly/ in the current directory. Settings such as the
endpoint and request timeout can be overridden in .barklyconfig.yaml.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(rootVerbose)
		if rootNoColor {
			cli.SetColorEnabled(false)
		}
	},
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("barkly version {{.Version}}\n")

	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "log requests and state changes to stderr")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "disable colored output")
}

func newLogger(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !cli.IsTerminal(os.Stderr),
	})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
