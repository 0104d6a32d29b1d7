package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"goldboard/internal/domain"
)

func TestHTTPSource_FetchParsesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/web_data.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current_price": 1958.4}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(domain.SourceCombined, srv.URL+"/data/", "/web_data.json")
	payload, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if payload["current_price"] != 1958.4 {
		t.Errorf("payload = %v", payload)
	}
}

func TestHTTPSource_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewHTTPSource(domain.SourceSample, srv.URL, "sample_data.json")
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

func TestHTTPSource_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer srv.Close()

	src := NewHTTPSource(domain.SourcePredictions, srv.URL, "latest_forecast.json")
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestHTTPSource_APIKeyAppended(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("apikey")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(domain.SourceCombined, srv.URL, "web_data.json", WithAPIKey("sekret"))
	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotKey != "sekret" {
		t.Errorf("apikey query param = %q", gotKey)
	}
}

func TestHTTPSource_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	src := NewHTTPSource(domain.SourceCombined, srv.URL, "web_data.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Fetch(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestJoinURL(t *testing.T) {
	cases := []struct{ base, path, want string }{
		{"https://x.test/data", "web.json", "https://x.test/data/web.json"},
		{"https://x.test/data/", "/web.json", "https://x.test/data/web.json"},
		{"https://x.test", "data/web.json", "https://x.test/data/web.json"},
	}
	for _, tc := range cases {
		if got := joinURL(tc.base, tc.path); got != tc.want {
			t.Errorf("joinURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
