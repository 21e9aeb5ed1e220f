// Package dogapi fetches random dog images from the dog.ceo API.
//
// Every error returned by a Service is a *model.AppError; transport and
// parsing errors never leave this package in raw form.
package dogapi

import (
	"context"

	"github.com/jacksmith/barkly/internal/model"
)

// DefaultEndpoint is the dog.ceo random image endpoint.
const DefaultEndpoint = "https://dog.ceo/api/breeds/image/random"

// Service fetches one new random image per call. There is no caching and
// no coalescing of concurrent calls.
type Service interface {
	FetchRandomDogImage(ctx context.Context) (model.DogImage, error)
}

// statusSuccess is the only status value the API uses for a good payload.
const statusSuccess = "success"

// randomImageResponse is the JSON body of the random image endpoint.
type randomImageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
