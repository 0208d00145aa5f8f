package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	body := "Position,Track Name\n1,Song\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("no auth header expected")
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(body))
	}))
	defer server.Close()

	f := NewHTTPFetcher(Options{})
	resp, err := f.Fetch(context.Background(), server.URL+"/regional/global/daily/2020-01-01/download")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != body {
		t.Errorf("body = %q, want %q", resp.Body, body)
	}
	if resp.ContentType != "text/csv" {
		t.Errorf("unexpected content type %q", resp.ContentType)
	}
}

func TestHTTPFetcher_Fetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2020-02-01/download", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/files/2020-02-01.csv", http.StatusFound)
	})
	mux.HandleFunc("/files/2020-02-01.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a,b\n"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := NewHTTPFetcher(Options{})
	resp, err := f.Fetch(context.Background(), server.URL+"/2020-02-01/download")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusOK || string(resp.Body) != "a,b\n" {
		t.Errorf("expected redirected body, got %d %q", resp.StatusCode, resp.Body)
	}
}

func TestHTTPFetcher_Fetch_NonSuccessIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html><title>Not Found</title></html>"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(Options{})
	resp, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	if resp.IsSuccess() {
		t.Error("404 must not count as success")
	}
	if len(resp.Body) == 0 {
		t.Error("expected the error body to be returned")
	}
}

func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f := NewHTTPFetcher(Options{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestHTTPFetcher_Fetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a,b\n"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewHTTPFetcher(Options{})
	_, err := f.Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestHTTPFetcher_Fetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewHTTPFetcher(Options{Timeout: time.Second})
	if _, err := f.Fetch(context.Background(), url); err == nil {
		t.Error("expected connection error")
	}
}
