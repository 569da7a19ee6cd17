package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agentdex/agentdex/pkg/cache"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	return NewClient(Config{BaseURL: srv.URL, Cache: fc, TTL: time.Hour}), srv
}

func TestTree(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/registry/git/trees/main" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("recursive") != "1" {
			t.Error("expected recursive=1")
		}
		w.Write([]byte(`{"tree":[{"path":"agents/echo.json","type":"blob","size":120},{"path":"agents","type":"tree"}]}`))
	}))

	entries, err := c.Tree(context.Background(), "acme", "registry", "main")
	if err != nil {
		t.Fatalf("Tree error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Path != "agents/echo.json" || entries[0].Type != "blob" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
}

func TestRawFile(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/registry/contents/agents/echo.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); accept != "application/vnd.github.v3.raw" {
			t.Errorf("Accept = %q, want raw media type", accept)
		}
		w.Write([]byte(`{"name":"Echo"}`))
	}))

	body, err := c.RawFile(context.Background(), "acme", "registry", "main", "agents/echo.json")
	if err != nil {
		t.Fatalf("RawFile error: %v", err)
	}
	if body != `{"name":"Echo"}` {
		t.Errorf("RawFile = %q", body)
	}
}

func TestSearchRepos(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "topic:a2a-protocol" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("per_page") != "100" || q.Get("page") != "2" {
			t.Errorf("paging params = %v", q)
		}
		w.Write([]byte(`{"total_count":1,"items":[{"name":"echo-agent","full_name":"someorg/echo-agent","stargazers_count":42,"owner":{"login":"someorg"}}]}`))
	}))

	res, err := c.SearchRepos(context.Background(), "topic:a2a-protocol", 2, 100)
	if err != nil {
		t.Fatalf("SearchRepos error: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].Stars != 42 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"tree":[]}`))
	}))

	ctx := context.Background()
	if _, err := c.Tree(ctx, "a", "b", "main"); err != nil {
		t.Fatalf("first Tree error: %v", err)
	}
	if _, err := c.Tree(ctx, "a", "b", "main"); err != nil {
		t.Fatalf("second Tree error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1 (second call cached)", got)
	}
}

func TestNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.Tree(context.Background(), "a", "missing", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"tree":[{"path":"x","type":"blob"}]}`))
	}))

	entries, err := c.Tree(context.Background(), "a", "b", "")
	if err != nil {
		t.Fatalf("Tree error after retry: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}
	if hits.Load() != 2 {
		t.Errorf("server hits = %d, want 2 (one retry)", hits.Load())
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.Tree(context.Background(), "a", "b", "")
	if err == nil {
		t.Fatal("expected error for 403")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (no retry on 4xx)", hits.Load())
	}
}

func TestAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok123" {
			t.Errorf("Authorization = %q", auth)
		}
		w.Write([]byte(`{"tree":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Token: "tok123"})
	if _, err := c.Tree(context.Background(), "a", "b", ""); err != nil {
		t.Fatalf("Tree error: %v", err)
	}
}
