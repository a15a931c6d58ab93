package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pvolkov/clubfacts/internal/cache"
	"github.com/pvolkov/clubfacts/internal/model"
	"github.com/pvolkov/clubfacts/internal/util"
)

// ErrDisallowed marks a URL that robots.txt forbids for our agent.
// It is permanent; retrying cannot help.
var ErrDisallowed = errors.New("disallowed by robots.txt")

const maxFetchAttempts = 3

// fetchSleepFunc is swapped out in tests to avoid real backoff sleeps.
var fetchSleepFunc = time.Sleep

// Fetcher retrieves article HTML. A page cache and a robots checker are
// optional; when attached, cache hits skip the network entirely and
// robots rules are consulted before every live fetch.
type Fetcher struct {
	client *http.Client
	ua     string
	max    int64
	pages  *cache.Pages
	robots *util.RobotsChecker
}

// NewFetcher creates a fetcher from the HTTP configuration.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.ProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		ua:  cfg.UserAgent,
		max: cfg.MaxBodyBytes,
	}
}

// WithCache attaches a page cache.
func (f *Fetcher) WithCache(p *cache.Pages) *Fetcher {
	f.pages = p
	return f
}

// WithRobots attaches a robots.txt checker.
func (f *Fetcher) WithRobots(r *util.RobotsChecker) *Fetcher {
	f.robots = r
	return f
}

// FetchResult is one fetched article.
type FetchResult struct {
	HTML      string
	Subject   string
	FinalURL  string
	FromCache bool
}

// Fetch retrieves one URL, going through the page cache when attached.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.pages != nil {
		if body, ok := f.pages.GetPage(rawURL); ok {
			return &FetchResult{
				HTML:      string(body),
				Subject:   extractSubject(rawURL),
				FinalURL:  rawURL,
				FromCache: true,
			}, nil
		}
	}

	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.max))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if f.pages != nil {
		_ = f.pages.PutPage(rawURL, body)
	}

	finalURL := resp.Request.URL.String()
	return &FetchResult{
		HTML:     string(body),
		Subject:  extractSubject(finalURL),
		FinalURL: finalURL,
	}, nil
}

// FetchWithRetry fetches with up to three attempts, backing off between
// transient failures. Permanent failures (4xx other than 429, robots
// denials, bad URLs) are returned immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) || attempt == maxFetchAttempts {
			break
		}
		fetchSleepFunc(time.Duration(attempt) * time.Second)
	}
	return nil, lastErr
}

// isRetryableFetchError reports whether a fetch error is worth another
// attempt: transport-level failures, 429, and 5xx responses qualify.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDisallowed) {
		return false
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "fetch:") {
		return true
	}
	var code int
	if _, scanErr := fmt.Sscanf(msg, "unexpected status: %d", &code); scanErr == nil {
		return code == http.StatusTooManyRequests || code >= 500
	}
	return false
}

// extractSubject recovers a readable subject from an article URL:
// the last path segment, unescaped and de-slugged.
func extractSubject(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]
	if unescaped, err := url.PathUnescape(last); err == nil {
		last = unescaped
	}
	return strings.ReplaceAll(last, "_", " ")
}
