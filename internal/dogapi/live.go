package dogapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jacksmith/barkly/internal/model"
	"github.com/sirupsen/logrus"
)

var errNotAbsolute = errors.New("not an absolute url")

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// DefaultTimeout bounds a single request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config configures a LiveService.
type Config struct {
	Endpoint  string        // defaults to DefaultEndpoint
	Timeout   time.Duration // defaults to DefaultTimeout
	UserAgent string        // omitted from requests when empty
}

// LiveService implements Service over HTTP.
type LiveService struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewLiveService creates a LiveService. The endpoint is not validated here;
// a malformed endpoint surfaces as an unknown error on the first fetch.
func NewLiveService(cfg Config, log logrus.FieldLogger) *LiveService {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &LiveService{
		endpoint:  endpoint,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.WithField("component", "dogapi"),
	}
}

// FetchRandomDogImage requests one random image.
func (s *LiveService) FetchRandomDogImage(ctx context.Context) (model.DogImage, error) {
	endpoint, err := url.Parse(s.endpoint)
	if err != nil || !endpoint.IsAbs() || endpoint.Host == "" {
		s.log.WithField("endpoint", s.endpoint).Error("invalid endpoint")
		return model.DogImage{}, model.ErrUnknown
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return model.DogImage{}, model.ErrUnknown
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.WithError(err).Debug("request failed")
		return model.DogImage{}, model.NetworkError(err.Error())
	}
	defer resp.Body.Close()

	entry := s.log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"latency": time.Since(start).Round(time.Millisecond),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		entry.Debug("unexpected status")
		return model.DogImage{}, model.ErrInvalidResponse
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		entry.WithError(err).Debug("reading body failed")
		return model.DogImage{}, model.NetworkError(err.Error())
	}
	if len(body) > maxBodySize {
		entry.Debug("body too large")
		return model.DogImage{}, model.ErrInvalidResponse
	}

	img, err := decodeRandomImage(body)
	if err != nil {
		entry.WithError(err).Debug("bad payload")
		return model.DogImage{}, err
	}

	entry.WithField("image", img.ID).Debug("fetched image")
	return img, nil
}

// decodeRandomImage parses and validates a random image response body.
func decodeRandomImage(body []byte) (model.DogImage, error) {
	var decoded randomImageResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return model.DogImage{}, model.ErrDecoding
	}

	if decoded.Status != statusSuccess {
		return model.DogImage{}, model.ErrInvalidResponse
	}

	imageURL, err := parseImageURL(decoded.Message)
	if err != nil {
		return model.DogImage{}, model.ErrInvalidResponse
	}

	return model.NewDogImage(imageURL), nil
}

// parseImageURL accepts only absolute URLs with a host.
func parseImageURL(raw string) (*url.URL, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: raw, Err: errNotAbsolute}
	}
	return u, nil
}
