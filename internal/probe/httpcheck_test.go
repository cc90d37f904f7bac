package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hamed0406/infrawatch/internal/domain"
)

func webTarget(url string, expected int) domain.Target {
	return domain.Target{Name: "t", Kind: domain.KindWebsite, URL: url, ExpectedStatus: expected}
}

func TestHTTPChecker_ExpectedStatusOK(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer s.Close()

	out := NewHTTPChecker().Check(context.Background(), webTarget(s.URL, 0))
	if !out.Up {
		t.Fatalf("want up, got %+v", out)
	}
	if out.Latency <= 0 {
		t.Fatalf("latency should be positive, got %v", out.Latency)
	}
	if out.Err != "" {
		t.Fatalf("no error expected, got %q", out.Err)
	}
}

func TestHTTPChecker_StatusMismatchIsDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	out := NewHTTPChecker().Check(context.Background(), webTarget(s.URL, 0))
	if out.Up {
		t.Fatalf("want down, got %+v", out)
	}
	if out.Err != "HTTP 500" {
		t.Fatalf("want error %q, got %q", "HTTP 500", out.Err)
	}
}

func TestHTTPChecker_CustomExpectedStatus(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer s.Close()

	out := NewHTTPChecker().Check(context.Background(), webTarget(s.URL, 404))
	if !out.Up {
		t.Fatalf("404 matches the expected status, got %+v", out)
	}
}

func TestHTTPChecker_TimeoutIsDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out := NewHTTPChecker().Check(ctx, webTarget(s.URL, 0))
	if out.Up {
		t.Fatalf("want down on timeout, got %+v", out)
	}
	if out.Err != "HTTP timeout" {
		t.Fatalf("want %q, got %q", "HTTP timeout", out.Err)
	}
}
