package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jacksmith/barkly/internal/cli"
	"github.com/jacksmith/barkly/internal/favorites"
	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:     "fav",
	Aliases: []string{"favorites"},
	Short:   "Manage favorite photos",
	Long: `Manage favorite photos.

Favorites are kept newest first. URLs are compared after turning http into
https, so both forms of the same photo count as one favorite.

Subcommands:
  list    List favorites
  toggle  Add or remove a favorite
  check   Show whether a URL is a favorite`,
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites, newest first",
	Args:  cobra.NoArgs,
	RunE:  runFavList,
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle <url>",
	Short: "Add or remove a favorite",
	Long: `Add the URL to favorites, or remove it if it is already there.

Examples:
  barkly fav toggle https://images.dog.ceo/breeds/husky/n02110185_1469.jpg`,
	Args:              cobra.ExactArgs(1),
	RunE:              runFavToggle,
	ValidArgsFunction: completeFavoriteURLs,
}

var favCheckCmd = &cobra.Command{
	Use:               "check <url>",
	Short:             "Show whether a URL is a favorite",
	Args:              cobra.ExactArgs(1),
	RunE:              runFavCheck,
	ValidArgsFunction: completeFavoriteURLs,
}

func init() {
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favToggleCmd)
	favCmd.AddCommand(favCheckCmd)
	rootCmd.AddCommand(favCmd)
}

func runFavList(cmd *cobra.Command, args []string) error {
	store, err := openFavorites(false)
	if err != nil {
		return err
	}

	urls := store.URLs()
	if len(urls) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}

	table := cli.NewTable()
	table.SetMaxWidth(1, cli.DefaultMaxURLWidth)
	for i, u := range urls {
		table.AddRow(cli.Gray(strconv.Itoa(i+1)), u.String())
	}
	table.Render(os.Stdout)
	return nil
}

func runFavToggle(cmd *cobra.Command, args []string) error {
	u, err := parseImageURL(args[0])
	if err != nil {
		return err
	}

	store, err := openFavorites(true)
	if err != nil {
		return err
	}

	store.Toggle(u)
	n := favorites.Normalize(u)
	if store.IsFavorite(u) {
		fmt.Printf("%s Added %s\n", cli.Heart(true), n)
	} else {
		fmt.Printf("%s Removed %s\n", cli.Heart(false), n)
	}
	return nil
}

func runFavCheck(cmd *cobra.Command, args []string) error {
	u, err := parseImageURL(args[0])
	if err != nil {
		return err
	}

	store, err := openFavorites(false)
	if err != nil {
		return err
	}

	if store.IsFavorite(u) {
		fmt.Printf("%s %s is a favorite\n", cli.Heart(true), u)
	} else {
		fmt.Printf("%s %s is not a favorite\n", cli.Heart(false), u)
	}
	return nil
}
