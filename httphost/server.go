package httphost

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/aura-studio/funcapp/function"
)

// ShutdownTimeout bounds how long Close waits for in-flight invocations.
var ShutdownTimeout = 5 * time.Second

var (
	mu     sync.Mutex
	srv    *http.Server
	closed bool
)

// Serve listens on the configured address until Close is called. A Close
// that lands before Serve makes Serve return nil without listening.
func Serve(fn *function.Engine, opts ...Option) error {
	e := NewEngine(fn, opts...)
	s := &http.Server{
		Addr:    e.Address,
		Handler: e,
	}

	mu.Lock()
	if closed {
		mu.Unlock()
		return nil
	}
	srv = s
	mu.Unlock()

	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server started by Serve.
func Close() error {
	mu.Lock()
	closed = true
	s := srv
	mu.Unlock()
	if s == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
