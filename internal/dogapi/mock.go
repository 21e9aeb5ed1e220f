package dogapi

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"sync"

	"github.com/jacksmith/barkly/internal/model"
)

// MockMode selects how a MockService answers.
type MockMode string

const (
	MockRandom  MockMode = "random"
	MockCycling MockMode = "cycling"
	MockFailure MockMode = "failure"
)

// MockModes lists every supported mode.
var MockModes = []string{string(MockRandom), string(MockCycling), string(MockFailure)}

// mockImages are known-good images served by MockService.
var mockImages = []string{
	"https://images.dog.ceo/breeds/husky/n02110185_1469.jpg",
	"https://images.dog.ceo/breeds/hound-afghan/n02088094_1003.jpg",
	"https://images.dog.ceo/breeds/ridgeback-rhodesian/n02087394_10591.jpg",
	"https://images.dog.ceo/breeds/shiba/shiba-3i.jpg",
}

// MockService is an offline Service for demos and tests.
type MockService struct {
	mode MockMode
	urls []*url.URL

	mu    sync.Mutex
	index int
	rng   *rand.Rand
}

// NewMockService returns a MockService in the given mode.
func NewMockService(mode MockMode) (*MockService, error) {
	switch mode {
	case MockRandom, MockCycling, MockFailure:
	default:
		return nil, fmt.Errorf("unknown mock mode %q", mode)
	}

	urls := make([]*url.URL, 0, len(mockImages))
	for _, raw := range mockImages {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("bad mock image %q: %w", raw, err)
		}
		urls = append(urls, u)
	}

	return &MockService{
		mode: mode,
		urls: urls,
		rng:  rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

// FetchRandomDogImage returns a canned image, or a network error in
// failure mode.
func (m *MockService) FetchRandomDogImage(ctx context.Context) (model.DogImage, error) {
	if err := ctx.Err(); err != nil {
		return model.DogImage{}, model.NetworkError(err.Error())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.mode {
	case MockFailure:
		return model.DogImage{}, model.NetworkError("No internet connection")
	case MockCycling:
		u := m.urls[m.index%len(m.urls)]
		m.index++
		return model.NewDogImage(u), nil
	default:
		if len(m.urls) == 0 {
			return model.DogImage{}, model.ErrInvalidResponse
		}
		return model.NewDogImage(m.urls[m.rng.Intn(len(m.urls))]), nil
	}
}
