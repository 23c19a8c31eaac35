package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const testBody = `{
	"totalArticles": 2,
	"articles": [
		{"title": "First", "description": "d1", "content": "c1", "url": "https://example.com/1",
		 "image": "https://example.com/1.jpg", "publishedAt": "2025-01-01T00:00:00Z",
		 "source": {"name": "Example", "url": "https://example.com"}},
		{"title": "Second", "description": null, "content": "c2", "url": "https://example.com/2",
		 "image": null, "publishedAt": "2025-01-02T00:00:00Z",
		 "source": {"name": "Example", "url": "https://example.com"}}
	]
}`

func newTestClient(baseURL, apiKey string) *Client {
	return NewClient(Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: 5 * time.Second,
	})
}

func Test_Search_Success(t *testing.T) {
	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Write([]byte(testBody))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-key")
	resp, err := c.Search(context.Background(), SearchParams{Query: "Apple AND iPhone", Max: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TotalArticles != 2 {
		t.Errorf("totalArticles = %d, want 2", resp.TotalArticles)
	}
	if len(resp.Articles) != 2 {
		t.Fatalf("articles = %d, want 2", len(resp.Articles))
	}
	if resp.Articles[1].Description != nil {
		t.Errorf("null description should decode to nil, got %q", *resp.Articles[1].Description)
	}

	query := gotQuery.Load().(url.Values)
	if got := query.Get("q"); got != "Apple AND iPhone" {
		t.Errorf("q = %q, want the search query", got)
	}
	if got := query.Get("max"); got != "5" {
		t.Errorf("max = %q, want 5", got)
	}
	if got := query.Get("apikey"); got != "test-key" {
		t.Errorf("apikey = %q, want test-key on the outbound request", got)
	}
}

func Test_TopHeadlines_SendsDefaultCategory(t *testing.T) {
	var gotCategory atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCategory.Store(r.URL.Query().Get("category"))
		w.Write([]byte(`{"totalArticles": 0, "articles": []}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-key")
	if _, err := c.TopHeadlines(context.Background(), HeadlinesParams{Max: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotCategory.Load().(string); got != "general" {
		t.Errorf("category = %q, want general", got)
	}
}

func Test_Search_MissingAPIKey(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(testBody))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	_, err := c.Search(context.Background(), SearchParams{Query: "apple", Max: 10})

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "configuration") {
		t.Errorf("error should mention configuration, got: %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no HTTP attempts, got %d", calls.Load())
	}
}

func Test_Search_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		w.Write([]byte(`{"errors": ["API key invalid"]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "bad-key")
	_, err := c.Search(context.Background(), SearchParams{Query: "apple", Max: 10})

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
	}
	if upErr.StatusCode != 403 {
		t.Errorf("status = %d, want 403", upErr.StatusCode)
	}
	if upErr.Message != "API key invalid" {
		t.Errorf("message = %q, want the provider text", upErr.Message)
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "API key invalid") {
		t.Errorf("error should carry status and message, got: %v", err)
	}
}

func Test_Search_UpstreamError_NonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(502)
		w.Write([]byte("Bad Gateway"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-key")
	_, err := c.Search(context.Background(), SearchParams{Query: "apple", Max: 10})

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
	}
	if upErr.Message != "Bad Gateway" {
		t.Errorf("message = %q, want the raw body", upErr.Message)
	}
}

func Test_Search_ProtocolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "test-key")
	_, err := c.Search(context.Background(), SearchParams{Query: "apple", Max: 10})

	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
	}
}

func Test_Search_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := newTestClient(server.URL, "test-key")
	_, err := c.Search(context.Background(), SearchParams{Query: "apple", Max: 10})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "network error") {
		t.Errorf("error should name the network failure, got: %v", err)
	}
}

func Test_Search_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(testBody))
	}))
	defer server.Close()

	c := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 20 * time.Millisecond,
	})

	_, err := c.Search(context.Background(), SearchParams{Query: "apple", Max: 10})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError on timeout, got %T: %v", err, err)
	}
}

func Test_Search_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	c := newTestClient(server.URL, "test-key")
	_, err := c.Search(ctx, SearchParams{Query: "apple", Max: 10})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError on cancellation, got %T: %v", err, err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancellation should be visible via errors.Is, got: %v", err)
	}
}
