package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/moviecache/internal/config"
)

// blockingUpstream holds every request until release is closed and records
// whether the client gave up on it first.
type blockingUpstream struct {
	srv     *httptest.Server
	arrived atomic.Int32
	aborted atomic.Bool
	release chan struct{}
}

func newBlockingUpstream(t *testing.T) *blockingUpstream {
	t.Helper()
	u := &blockingUpstream{release: make(chan struct{})}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.arrived.Add(1)
		select {
		case <-u.release:
			_, _ = io.WriteString(w, `{"Title":"Heat","imdbID":"tt0113277","Response":"True"}`)
		case <-r.Context().Done():
			u.aborted.Store(true)
		}
	}))
	t.Cleanup(func() {
		close(u.release)
		u.srv.Close()
	})
	return u
}

func testConfig(baseURL string, singleFlight bool) *config.Config {
	return &config.Config{
		OMDb:  config.OMDbConfig{BaseURL: baseURL + "/", APIKey: "k", Timeout: 5 * time.Second},
		Cache: config.CacheConfig{SearchTTL: time.Minute, DetailTTL: time.Minute, SingleFlight: singleFlight},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildService_CancelAbortsUpstreamByDefault(t *testing.T) {
	up := newBlockingUpstream(t)
	svc := buildService(testConfig(up.srv.URL, false), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Movie(ctx, "tt0113277")
		done <- err
	}()

	require.Eventually(t, func() bool { return up.arrived.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	assert.Eventually(t, up.aborted.Load, 2*time.Second, 5*time.Millisecond, "upstream request should be canceled")
}

func TestBuildService_SingleFlightFromConfig(t *testing.T) {
	up := newBlockingUpstream(t)
	svc := buildService(testConfig(up.srv.URL, true), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Movie(ctx, "tt0113277")
		done <- err
	}()

	require.Eventually(t, func() bool { return up.arrived.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, up.aborted.Load(), "shared fetch outlives a single caller")
}
