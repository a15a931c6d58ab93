package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pvolkov/clubfacts/internal/cache"
	"github.com/pvolkov/clubfacts/internal/model"
	"github.com/pvolkov/clubfacts/internal/util"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "clubfacts-test/0.1",
		MaxBodyBytes: 1 << 20,
	}
}

func quietSleep(t *testing.T) {
	t.Helper()
	orig := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = orig })
}

func TestFetchWithRetry_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig())
	result, err := fetcher.FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.HTML != "<html><body>OK</body></html>" {
		t.Errorf("Unexpected HTML: %s", result.HTML)
	}
	if result.FromCache {
		t.Error("Live fetch must not be marked as cached")
	}
}

func TestFetchWithRetry_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "<html>OK</html>")
	}))
	defer server.Close()
	quietSleep(t)

	fetcher := NewFetcher(testHTTPConfig())
	result, err := fetcher.FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if result.HTML != "<html>OK</html>" {
		t.Errorf("Unexpected HTML: %s", result.HTML)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetchWithRetry_PermanentFailure(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()
	quietSleep(t)

	fetcher := NewFetcher(testHTTPConfig())
	if _, err := fetcher.FetchWithRetry(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	// 404 is not retryable, so it must fail on the first attempt
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts.Load())
	}
}

func TestFetchWithRetry_AllRetriesExhausted(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	quietSleep(t)

	fetcher := NewFetcher(testHTTPConfig())
	if _, err := fetcher.FetchWithRetry(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error after all retries exhausted")
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetch_CacheHitSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, "<html>body</html>")
	}))
	defer server.Close()

	pages := cache.NewPages(t.TempDir(), time.Minute, time.Hour)
	fetcher := NewFetcher(testHTTPConfig()).WithCache(pages)

	first, err := fetcher.Fetch(context.Background(), server.URL+"/wiki/Some_Player")
	if err != nil {
		t.Fatalf("First fetch: %v", err)
	}
	if first.FromCache {
		t.Error("First fetch must hit the network")
	}

	second, err := fetcher.Fetch(context.Background(), server.URL+"/wiki/Some_Player")
	if err != nil {
		t.Fatalf("Second fetch: %v", err)
	}
	if !second.FromCache || second.HTML != first.HTML {
		t.Errorf("Second fetch = %+v", second)
	}
	if hits.Load() != 1 {
		t.Errorf("Server hits = %d, want 1", hits.Load())
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /wiki/\n")
	})
	var pageHits atomic.Int32
	mux.HandleFunc("/wiki/", func(w http.ResponseWriter, r *http.Request) {
		pageHits.Add(1)
		_, _ = fmt.Fprint(w, "<html>body</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	robots := util.NewRobotsChecker("clubfacts-test/0.1", 5*time.Second)
	fetcher := NewFetcher(testHTTPConfig()).WithRobots(robots)

	_, err := fetcher.FetchWithRetry(context.Background(), server.URL+"/wiki/Some_Player")
	if !errors.Is(err, ErrDisallowed) {
		t.Fatalf("Expected ErrDisallowed, got %v", err)
	}
	if pageHits.Load() != 0 {
		t.Errorf("Disallowed page was fetched %d times", pageHits.Load())
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		err       string
		retryable bool
	}{
		{"unexpected status: 503 503 Service Unavailable", true},
		{"unexpected status: 500 500 Internal Server Error", true},
		{"unexpected status: 429 429 Too Many Requests", true},
		{"unexpected status: 404 404 Not Found", false},
		{"unexpected status: 403 403 Forbidden", false},
		{"fetch: connection refused", true},
		{"create request: invalid URL", false},
		{"read body: unexpected EOF", false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			got := isRetryableFetchError(errors.New(tt.err))
			if got != tt.retryable {
				t.Errorf("isRetryableFetchError(%q) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}

	if isRetryableFetchError(nil) {
		t.Error("nil error must not be retryable")
	}
	if isRetryableFetchError(fmt.Errorf("%s: %w", "url", ErrDisallowed)) {
		t.Error("robots denial must not be retryable")
	}
}

func TestExtractSubject(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://en.wikipedia.org/wiki/Some_Player", "Some Player"},
		{"https://en.wikipedia.org/wiki/Zlatan_Ibrahimovi%C4%87", "Zlatan Ibrahimović"},
		{"https://en.wikipedia.org", "en.wikipedia.org"},
	}
	for _, tt := range tests {
		if got := extractSubject(tt.url); got != tt.want {
			t.Errorf("extractSubject(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
