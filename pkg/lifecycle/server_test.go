package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	started  chan struct{}
	stopped  chan struct{}
	startErr error
}

func newStubService() *stubService {
	return &stubService{
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *stubService) Start(ctx context.Context) error {
	close(s.started)

	if s.startErr != nil {
		return s.startErr
	}

	<-ctx.Done()

	return nil
}

func (s *stubService) Stop(_ context.Context) error {
	close(s.stopped)
	return nil
}

func freeAddr(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	return addr
}

func TestRunServerStopsOnContextCancel(t *testing.T) {
	svc := newStubService()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- RunServer(ctx, &ServerOptions{
			ServiceName: "test",
			Service:     svc,
		})
	}()

	<-svc.started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return after cancel")
	}

	select {
	case <-svc.stopped:
	default:
		t.Fatal("service was not stopped")
	}
}

func TestRunServerPropagatesServiceError(t *testing.T) {
	svc := newStubService()
	svc.startErr = errors.New("boom")

	done := make(chan error, 1)

	go func() {
		done <- RunServer(context.Background(), &ServerOptions{
			ServiceName: "test",
			Service:     svc,
		})
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return on service error")
	}
}

func TestRunServerServesHTTP(t *testing.T) {
	svc := newStubService()
	addr := freeAddr(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- RunServer(ctx, &ServerOptions{
			ServiceName: "test",
			HTTPAddr:    addr,
			Handler:     mux,
			Service:     svc,
		})
	}()

	<-svc.started

	var resp *http.Response

	require.Eventually(t, func() bool {
		var err error

		resp, err = http.Get(fmt.Sprintf("http://%s/ping", addr))
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return after cancel")
	}
}
