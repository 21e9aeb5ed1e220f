package viewmodel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/jacksmith/barkly/internal/dogapi"
	"github.com/jacksmith/barkly/internal/model"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService answers each call with the next function in calls.
type stubService struct {
	mu    sync.Mutex
	calls []func(ctx context.Context) (model.DogImage, error)
	n     int
}

func (s *stubService) FetchRandomDogImage(ctx context.Context) (model.DogImage, error) {
	s.mu.Lock()
	fn := s.calls[s.n%len(s.calls)]
	s.n++
	s.mu.Unlock()
	return fn(ctx)
}

// waitCalls blocks until at least n fetches have started.
func (s *stubService) waitCalls(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.n >= n
	}, 5*time.Second, time.Millisecond)
}

func returning(img model.DogImage, err error) func(context.Context) (model.DogImage, error) {
	return func(context.Context) (model.DogImage, error) { return img, err }
}

// gated blocks until release is closed.
func gated(release <-chan struct{}, img model.DogImage, err error) func(context.Context) (model.DogImage, error) {
	return func(context.Context) (model.DogImage, error) {
		<-release
		return img, err
	}
}

func image(t *testing.T, raw string) model.DogImage {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return model.NewDogImage(u)
}

func newTestViewModel(svc dogapi.Service) *RandomDog {
	logger, _ := test.NewNullLogger()
	return NewRandomDog(svc, logger)
}

func waitState(t *testing.T, ch <-chan State) State {
	t.Helper()
	select {
	case st := <-ch:
		return st
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not settle")
		return nil
	}
}

func TestRandomDogStartsIdle(t *testing.T) {
	vm := newTestViewModel(&stubService{})
	assert.Equal(t, Idle{}, vm.State())
}

func TestRandomDogLoadingIsVisibleBeforeFetchResolves(t *testing.T) {
	release := make(chan struct{})
	img := image(t, "https://images.dog.ceo/breeds/husky/x.jpg")
	vm := newTestViewModel(&stubService{calls: []func(context.Context) (model.DogImage, error){
		gated(release, img, nil),
	}})

	done := vm.Start(context.Background())
	assert.Equal(t, Loading{}, vm.State())

	close(release)
	st := waitState(t, done)
	assert.Equal(t, Loaded{Image: img}, st)
	assert.Equal(t, Loaded{Image: img}, vm.State())

	_, open := <-done
	assert.False(t, open)
}

func TestRandomDogGenerate(t *testing.T) {
	img := image(t, "https://images.dog.ceo/breeds/husky/x.jpg")

	tests := []struct {
		name string
		err  error
		want State
	}{
		{"success", nil, Loaded{Image: img}},
		{"network error", model.NetworkError("offline"), Failed{Err: model.NetworkError("offline")}},
		{"invalid response", model.ErrInvalidResponse, Failed{Err: model.ErrInvalidResponse}},
		{"decoding", model.ErrDecoding, Failed{Err: model.ErrDecoding}},
		{"untyped error becomes unknown", errors.New("boom"), Failed{Err: model.ErrUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := img
			if tt.err != nil {
				result = model.DogImage{}
			}
			vm := newTestViewModel(&stubService{calls: []func(context.Context) (model.DogImage, error){
				returning(result, tt.err),
			}})

			st := vm.Generate(context.Background())
			assert.Equal(t, tt.want, st)
			assert.Equal(t, tt.want, vm.State())
		})
	}
}

func TestRandomDogRetryAfterFailure(t *testing.T) {
	img := image(t, "https://images.dog.ceo/a.jpg")
	vm := newTestViewModel(&stubService{calls: []func(context.Context) (model.DogImage, error){
		returning(model.DogImage{}, model.NetworkError("offline")),
		returning(img, nil),
	}})

	var seen []State
	vm.Subscribe(func(st State) { seen = append(seen, st) })

	vm.Generate(context.Background())
	vm.Generate(context.Background())

	assert.Equal(t, []State{
		Loading{},
		Failed{Err: model.NetworkError("offline")},
		Loading{},
		Loaded{Image: img},
	}, seen)
}

func TestRandomDogSubscribeCancel(t *testing.T) {
	vm := newTestViewModel(&stubService{calls: []func(context.Context) (model.DogImage, error){
		returning(image(t, "https://a/x.jpg"), nil),
	}})

	var count int
	cancel := vm.Subscribe(func(State) { count++ })
	vm.Generate(context.Background())
	assert.Equal(t, 2, count)

	cancel()
	vm.Generate(context.Background())
	assert.Equal(t, 2, count)
}

func TestRandomDogSupersededResultIsDropped(t *testing.T) {
	slowRelease := make(chan struct{})
	slow := image(t, "https://images.dog.ceo/slow.jpg")
	fast := image(t, "https://images.dog.ceo/fast.jpg")
	svc := &stubService{calls: []func(context.Context) (model.DogImage, error){
		gated(slowRelease, slow, nil),
		returning(fast, nil),
	}}
	vm := newTestViewModel(svc)

	first := vm.Start(context.Background())
	svc.waitCalls(t, 1)
	second := vm.Generate(context.Background())
	assert.Equal(t, Loaded{Image: fast}, second)

	close(slowRelease)
	assert.Equal(t, Loaded{Image: fast}, waitState(t, first))
	assert.Equal(t, Loaded{Image: fast}, vm.State())
}

func TestRandomDogSupersededFailureIsDropped(t *testing.T) {
	slowRelease := make(chan struct{})
	fastRelease := make(chan struct{})
	img := image(t, "https://images.dog.ceo/ok.jpg")
	svc := &stubService{calls: []func(context.Context) (model.DogImage, error){
		gated(slowRelease, model.DogImage{}, model.ErrDecoding),
		gated(fastRelease, img, nil),
	}}
	vm := newTestViewModel(svc)

	first := vm.Start(context.Background())
	svc.waitCalls(t, 1)
	second := vm.Start(context.Background())
	svc.waitCalls(t, 2)

	close(slowRelease)
	waitState(t, first)
	assert.Equal(t, Loading{}, vm.State())

	close(fastRelease)
	assert.Equal(t, Loaded{Image: img}, waitState(t, second))
}

func TestRandomDogStateStrings(t *testing.T) {
	assert.Equal(t, "idle", Idle{}.String())
	assert.Equal(t, "loading", Loading{}.String())
	assert.Equal(t, "loaded(https://a/x.jpg)", Loaded{Image: image(t, "https://a/x.jpg")}.String())
	assert.Equal(t, "failed(decoding)", Failed{Err: model.ErrDecoding}.String())
}

// The scenarios below run the view-model against the live service and a
// local server.

func liveViewModel(t *testing.T, status int, body string) *RandomDog {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	logger, _ := test.NewNullLogger()
	svc := dogapi.NewLiveService(dogapi.Config{Endpoint: srv.URL}, logger)
	return NewRandomDog(svc, logger)
}

func TestRandomDogWithLiveService(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		vm := liveViewModel(t, http.StatusOK, `{"message": "https://images.dog.ceo/breeds/husky/x.jpg", "status": "success"}`)
		st := vm.Generate(context.Background())
		assert.Equal(t, Loaded{Image: image(t, "https://images.dog.ceo/breeds/husky/x.jpg")}, st)
	})

	t.Run("http failure", func(t *testing.T) {
		vm := liveViewModel(t, http.StatusInternalServerError, `oops`)
		assert.Equal(t, Failed{Err: model.ErrInvalidResponse}, vm.Generate(context.Background()))
	})

	t.Run("malformed json", func(t *testing.T) {
		vm := liveViewModel(t, http.StatusOK, `not json`)
		assert.Equal(t, Failed{Err: model.ErrDecoding}, vm.Generate(context.Background()))
	})

	t.Run("bad payload", func(t *testing.T) {
		vm := liveViewModel(t, http.StatusOK, `{"message": "not a url", "status": "success"}`)
		assert.Equal(t, Failed{Err: model.ErrInvalidResponse}, vm.Generate(context.Background()))
	})
}
