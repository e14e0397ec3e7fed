// Package source opens the weather dataset from a local file or over HTTP and
// hands it to the store.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/store"
)

// Source yields the raw bytes of the dataset.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource returns a Source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return s.path }

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

// HTTPSource downloads the dataset, retrying transient failures behind a
// circuit breaker.
type HTTPSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPSource returns a Source for url using client and backoff.
func NewHTTPSource(url string, client *http.Client, backoff BackoffConfig) *HTTPSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dataset-download",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPSource{
		url:     url,
		httpCfg: HTTPClientConfig{Client: client, Backoff: backoff},
		circuit: cb,
	}
}

func (s *HTTPSource) Name() string { return s.url }

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv, text/plain, */*")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// New picks an HTTPSource for http(s) locations and a FileSource otherwise.
func New(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, client, DefaultBackoff)
	}
	return NewFileSource(location)
}

// Load opens src and parses it into a dataset. Every failure is a
// store.DataLoadError.
func Load(ctx context.Context, src Source, logger *logrus.Logger) (*store.Dataset, error) {
	log := logger.WithField("source", src.Name())
	started := time.Now()

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, store.NewDataLoadError(src.Name(), fmt.Errorf("open: %w", err))
	}
	defer rc.Close()

	ds, err := store.Load(ctx, src.Name(), rc)
	if err != nil {
		return nil, err
	}

	first, last := ds.Bounds()
	log.WithFields(logrus.Fields{
		"records":  ds.Len(),
		"from":     first.Format(time.RFC3339),
		"to":       last.Format(time.RFC3339),
		"duration": time.Since(started).String(),
	}).Info("dataset loaded")
	return ds, nil
}
