package main

import (
	"fmt"

	"github.com/jacksmith/barkly/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a barkly directory",
	Long: `Create a .barkly/ directory in the current directory.

Favorites are stored in .barkly/prefs.yaml. 'barkly fav toggle' and
'barkly fetch --fav' create the directory on first use, so running init
is optional.

Fails if .barkly/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := storage.Init("."); err != nil {
		return err
	}
	fmt.Println("Initialized barkly in .barkly/")
	return nil
}
