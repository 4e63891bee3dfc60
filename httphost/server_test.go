package httphost

import (
	"testing"
	"time"

	"github.com/aura-studio/funcapp/function"
)

func resetServer(t *testing.T) {
	t.Helper()
	reset := func() {
		mu.Lock()
		srv, closed = nil, false
		mu.Unlock()
	}
	reset()
	t.Cleanup(reset)
}

func serveAsync(fn *function.Engine) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- Serve(fn, WithAddress("127.0.0.1:0"))
	}()
	return done
}

func TestCloseBeforeServe(t *testing.T) {
	resetServer(t)

	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case err := <-serveAsync(function.NewEngine(nil)):
		if err != nil {
			t.Errorf("Serve = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve kept running after an earlier Close")
	}
}

func TestServeThenClose(t *testing.T) {
	resetServer(t)

	done := serveAsync(function.NewEngine(nil))
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		started := srv != nil
		mu.Unlock()
		if started {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Serve never published its server")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
}
