package main

import (
	"net/url"

	"github.com/jacksmith/barkly/internal/cli"
	"github.com/jacksmith/barkly/internal/dogapi"
	"github.com/jacksmith/barkly/internal/favorites"
	"github.com/jacksmith/barkly/internal/storage"
)

// newDogService builds the live service from .barklyconfig.yaml, or a mock
// service when mockMode is set.
func newDogService(mockMode string) (dogapi.Service, error) {
	if mockMode != "" {
		mode, err := cli.MatchChoice("mock mode", mockMode, dogapi.MockModes)
		if err != nil {
			return nil, err
		}
		return dogapi.NewMockService(dogapi.MockMode(mode))
	}

	cfg, err := storage.LoadConfig(".")
	if err != nil {
		return nil, err
	}
	return dogapi.NewLiveService(dogapi.Config{
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	}, logger), nil
}

// openFavorites returns the favorites store for the current directory.
// With create set, .barkly/ is created if missing. Without it, a missing
// .barkly/ yields an empty in-memory store.
func openFavorites(create bool) (*favorites.Store, error) {
	var (
		s   *storage.Storage
		err error
	)
	if create {
		s, err = storage.OpenOrInit(".")
	} else {
		s, err = storage.Open(".")
		if _, ok := err.(*storage.NotInitializedError); ok {
			return favorites.NewStore(nil, logger), nil
		}
	}
	if err != nil {
		return nil, err
	}
	return favorites.NewStore(storage.NewFavoritesPersistence(s), logger), nil
}

// parseImageURL validates a URL given on the command line.
func parseImageURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &cli.InvalidURLError{Input: raw, Reason: "does not parse"}
	}
	if !favorites.Usable(u) {
		return nil, &cli.InvalidURLError{Input: raw, Reason: "must be an absolute url with a host"}
	}
	return u, nil
}
