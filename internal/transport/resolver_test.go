package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestGetDirectSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	res := New(Options{RelayURL: "http://relay.invalid", Timeout: time.Second}, noopLogger())
	body, err := res.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("direct success should not error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
	if res.UsedRelay() {
		t.Fatal("relay flag must be false after a direct success")
	}
}

func TestGetFallsBackToRelay(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer direct.Close()

	var relayHits atomic.Int64
	var gotParam atomic.Value
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		relayHits.Add(1)
		gotParam.Store(r.URL.Query().Get("url"))
		_, _ = w.Write([]byte(`{"relayed":true}`))
	}))
	defer relay.Close()

	res := New(Options{RelayURL: relay.URL, Timeout: time.Second}, noopLogger())
	body, err := res.Get(context.Background(), direct.URL)
	if err != nil {
		t.Fatalf("relay success should not error: %v", err)
	}
	if string(body) != `{"relayed":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
	if n := relayHits.Load(); n != 1 {
		t.Fatalf("expected exactly one relay request, got %d", n)
	}
	if got := gotParam.Load(); got != direct.URL {
		t.Fatalf("relay url parameter mismatch: got %v, want %s", got, direct.URL)
	}
	if !res.UsedRelay() {
		t.Fatal("relay flag must be true after a relayed success")
	}
}

func TestGetBothAttemptsFail(t *testing.T) {
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	direct := httptest.NewServer(failing)
	defer direct.Close()
	relay := httptest.NewServer(failing)
	defer relay.Close()

	res := New(Options{RelayURL: relay.URL, Timeout: time.Second}, noopLogger())
	_, err := res.Get(context.Background(), direct.URL)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.URL != direct.URL {
		t.Fatalf("NetworkError should carry the original url, got %s", netErr.URL)
	}
}

func TestRelayFlagResetsOnDirectRecovery(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer direct.Close()

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer relay.Close()

	res := New(Options{RelayURL: relay.URL, Timeout: time.Second}, noopLogger())

	if _, err := res.Get(context.Background(), direct.URL); err != nil {
		t.Fatalf("relayed call failed: %v", err)
	}
	if !res.UsedRelay() {
		t.Fatal("expected relay flag set")
	}

	fail.Store(false)
	if _, err := res.Get(context.Background(), direct.URL); err != nil {
		t.Fatalf("direct call failed: %v", err)
	}
	if res.UsedRelay() {
		t.Fatal("relay flag should clear once the direct path recovers")
	}
}
