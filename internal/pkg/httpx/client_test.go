package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDoSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"alpha","count":3}`))
	}))
	defer srv.Close()

	res := Get[payload](context.Background(), srv.URL)
	if !res.OK {
		t.Fatalf("expected OK, got error %q", res.Err)
	}
	if res.Data.Name != "alpha" || res.Data.Count != 3 {
		t.Fatalf("unexpected payload: %+v", res.Data)
	}
	if res.LatencyMs < 0 {
		t.Fatalf("negative latency %d", res.LatencyMs)
	}
}

func TestDoNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	res := Get[payload](context.Background(), srv.URL)
	if res.OK {
		t.Fatal("expected failure on 502")
	}
	if !strings.Contains(res.Err, "HTTP 502") {
		t.Fatalf("error should carry the status, got %q", res.Err)
	}
}

func TestDoDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	res := Get[payload](context.Background(), srv.URL)
	if res.OK {
		t.Fatal("expected decode failure")
	}
	if !strings.Contains(res.Err, "decode") {
		t.Fatalf("unexpected error %q", res.Err)
	}
}

func TestDoTimeoutOnHangingServer(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	start := time.Now()
	res := Do[payload](context.Background(), Request{URL: srv.URL, Timeout: 100 * time.Millisecond})
	elapsed := time.Since(start)

	if res.OK {
		t.Fatal("expected timeout failure")
	}
	if elapsed > 2*time.Second {
		t.Fatalf("call did not respect timeout, took %v", elapsed)
	}
}
