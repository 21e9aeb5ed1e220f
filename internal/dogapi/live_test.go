package dogapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jacksmith/barkly/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves body with the given status for every request.
func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(endpoint string) *LiveService {
	logger, _ := test.NewNullLogger()
	return NewLiveService(Config{Endpoint: endpoint, Timeout: 5 * time.Second}, logger)
}

func TestLiveServiceFetch(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantURL string
		wantErr *model.AppError
	}{
		{
			name:    "success",
			status:  http.StatusOK,
			body:    `{"message": "https://images.dog.ceo/breeds/husky/x.jpg", "status": "success"}`,
			wantURL: "https://images.dog.ceo/breeds/husky/x.jpg",
		},
		{
			name:    "server error is an invalid response",
			status:  http.StatusInternalServerError,
			body:    `{"message": "boom", "status": "error"}`,
			wantErr: model.ErrInvalidResponse,
		},
		{
			name:    "not found is an invalid response",
			status:  http.StatusNotFound,
			body:    ``,
			wantErr: model.ErrInvalidResponse,
		},
		{
			name:    "malformed json is a decoding error",
			status:  http.StatusOK,
			body:    `{"message": `,
			wantErr: model.ErrDecoding,
		},
		{
			name:    "wrong field types are a decoding error",
			status:  http.StatusOK,
			body:    `{"message": 42, "status": "success"}`,
			wantErr: model.ErrDecoding,
		},
		{
			name:    "message that is not a url is an invalid response",
			status:  http.StatusOK,
			body:    `{"message": "not a url", "status": "success"}`,
			wantErr: model.ErrInvalidResponse,
		},
		{
			name:    "relative message is an invalid response",
			status:  http.StatusOK,
			body:    `{"message": "/breeds/husky/x.jpg", "status": "success"}`,
			wantErr: model.ErrInvalidResponse,
		},
		{
			name:    "non-success status is an invalid response",
			status:  http.StatusOK,
			body:    `{"message": "https://images.dog.ceo/x.jpg", "status": "error"}`,
			wantErr: model.ErrInvalidResponse,
		},
		{
			name:    "oversized body is an invalid response",
			status:  http.StatusOK,
			body:    `{"message": "https://images.dog.ceo/x.jpg", "status": "success", "pad": "` + strings.Repeat("a", maxBodySize) + `"}`,
			wantErr: model.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body)
			svc := newTestService(srv.URL)

			img, err := svc.FetchRandomDogImage(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.True(t, img.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, img.ID)
			assert.Equal(t, tt.wantURL, img.ImageURL().String())
		})
	}
}

func TestLiveServiceNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	_, err := newTestService(endpoint).FetchRandomDogImage(context.Background())
	require.Error(t, err)

	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, model.KindNetwork, appErr.Kind)
	assert.NotEmpty(t, appErr.Message)
}

func TestLiveServiceInvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"://missing-scheme", "dog.ceo/api", "https://"} {
		t.Run(endpoint, func(t *testing.T) {
			_, err := newTestService(endpoint).FetchRandomDogImage(context.Background())
			assert.True(t, errors.Is(err, model.ErrUnknown), "got %v", err)
		})
	}
}

func TestLiveServiceRequest(t *testing.T) {
	var gotMethod, gotAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"message": "https://images.dog.ceo/x.jpg", "status": "success"}`))
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	svc := NewLiveService(Config{Endpoint: srv.URL, UserAgent: "barkly-test"}, logger)

	_, err := svc.FetchRandomDogImage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "barkly-test", gotAgent)
	assert.Equal(t, "application/json", gotAccept)
}

func TestLiveServiceTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	logger, _ := test.NewNullLogger()
	svc := NewLiveService(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond}, logger)

	_, err := svc.FetchRandomDogImage(context.Background())
	assert.True(t, errors.Is(err, model.ErrNetwork), "got %v", err)
}

func TestLiveServiceLogsRequests(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"message": "https://images.dog.ceo/x.jpg", "status": "success"}`)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	svc := NewLiveService(Config{Endpoint: srv.URL}, logger)

	_, err := svc.FetchRandomDogImage(context.Background())
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "fetched image", entry.Message)
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "dogapi", entry.Data["component"])
}

func TestNewLiveServiceDefaults(t *testing.T) {
	svc := NewLiveService(Config{}, nil)
	assert.Equal(t, DefaultEndpoint, svc.endpoint)
	assert.Equal(t, DefaultTimeout, svc.httpClient.Timeout)
}
