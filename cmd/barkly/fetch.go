package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksmith/barkly/internal/cli"
	"github.com/jacksmith/barkly/internal/favorites"
	"github.com/jacksmith/barkly/internal/viewmodel"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:     "fetch",
	Aliases: []string{"generate"},
	Short:   "Fetch a random dog photo",
	Long: `Fetch one random dog photo and print its URL.

A heart shows whether the photo is already a favorite. Use --fav to add it
to your favorites right away.

Use --mock to run without the network:
  random   pick from a fixed set of photos
  cycling  go through the fixed set in order
  failure  always fail with a network error

Examples:
  barkly fetch
  barkly fetch --fav
  barkly fetch --mock=cyc`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

var (
	fetchMock string
	fetchFav  bool
)

func init() {
	fetchCmd.Flags().StringVar(&fetchMock, "mock", "", "use an offline service (random, cycling, failure)")
	fetchCmd.Flags().BoolVar(&fetchFav, "fav", false, "add the fetched photo to favorites")
	fetchCmd.RegisterFlagCompletionFunc("mock", completeMockModes)
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	svc, err := newDogService(fetchMock)
	if err != nil {
		return err
	}

	store, err := openFavorites(fetchFav)
	if err != nil {
		return err
	}

	vm := viewmodel.NewRandomDog(svc, logger)
	if cli.IsTerminal(os.Stderr) {
		cancel := vm.Subscribe(func(st viewmodel.State) {
			if _, ok := st.(viewmodel.Loading); ok {
				fmt.Fprintln(os.Stderr, cli.Gray("Fetching…"))
			}
		})
		defer cancel()
	}

	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}

	return renderFetchState(vm.Generate(ctx), store, fetchFav)
}

// renderFetchState prints a settled state, adding a loaded image to store
// when fav is set. A failed fetch is returned as a *cli.FetchError.
func renderFetchState(st viewmodel.State, store *favorites.Store, fav bool) error {
	switch st := st.(type) {
	case viewmodel.Loaded:
		u := st.Image.ImageURL()
		if fav && !store.IsFavorite(u) {
			store.Toggle(u)
		}
		fmt.Printf("%s %s\n", cli.Heart(store.IsFavorite(u)), st.Image.ID)
		if fav {
			fmt.Println(cli.Green("Saved to favorites."))
		}
		return nil
	case viewmodel.Failed:
		return &cli.FetchError{Err: st.Err}
	case viewmodel.Idle, viewmodel.Loading:
		return fmt.Errorf("fetch did not settle (state %s)", st)
	default:
		return fmt.Errorf("unhandled state %T", st)
	}
}
