package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_CanFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\nCrawl-delay: 2\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("Coldtrail/0.1 (+https://github.com/ppiankov/coldtrail)", 5*time.Second)

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/bulletins/2014")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("Expected public path to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("Expected crawl delay 2s, got %v", delay)
	}

	allowed, _, err = checker.CanFetch(context.Background(), server.URL+"/private/cases")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if allowed {
		t.Error("Expected disallowed path to be blocked")
	}
}

func TestRobotsChecker_MissingRobotsAllowsAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("Coldtrail", 5*time.Second)

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("Expected everything allowed when robots.txt is missing")
	}
}

func TestRobotsChecker_UnreachableHostAllows(t *testing.T) {
	checker := NewRobotsChecker("Coldtrail", 200*time.Millisecond)

	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("Expected allow when robots.txt cannot be fetched")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("Coldtrail", 5*time.Second)

	for i := 0; i < 3; i++ {
		if !checker.IsAllowed(context.Background(), server.URL+"/page") {
			t.Fatal("Expected allowed")
		}
	}

	if fetches.Load() != 1 {
		t.Errorf("Expected 1 robots.txt fetch, got %d", fetches.Load())
	}

	checker.Clear()
	checker.IsAllowed(context.Background(), server.URL+"/page")
	if fetches.Load() != 2 {
		t.Errorf("Expected refetch after Clear, got %d fetches", fetches.Load())
	}
}

func TestRobotsChecker_AgentSpecificGroup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: Coldtrail\nDisallow: /\n\nUser-agent: *\nAllow: /\n"))
	}))
	defer server.Close()

	// Full UA string should still match the Coldtrail group
	checker := NewRobotsChecker("Coldtrail/0.1 (+https://github.com/ppiankov/coldtrail)", 5*time.Second)

	if checker.IsAllowed(context.Background(), server.URL+"/page") {
		t.Error("Expected agent-specific disallow to apply")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Coldtrail/0.1 (+https://github.com/ppiankov/coldtrail)", "Coldtrail"},
		{"Coldtrail", "Coldtrail"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.in); got != tt.expected {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
