// Package cache stores fetched article pages so repeated ingestion runs
// do not hammer the source site. A small in-process layer fronts a
// persistent on-disk layer; hits on disk are promoted to memory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the page cache contract.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey derives a stable cache key from a page URL.
func PageKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "clubfacts:v1:" + hex.EncodeToString(hash[:])
}

// Pages wraps a Cache with URL-level helpers for fetched article bodies.
type Pages struct {
	backend Cache
	ttl     time.Duration
}

// NewPages creates a layered page cache rooted at dir. Pages live in
// memory for memTTL and on disk for diskTTL.
func NewPages(dir string, memTTL, diskTTL time.Duration) *Pages {
	return &Pages{
		backend: NewLayered(memTTL, dir, diskTTL),
		ttl:     diskTTL,
	}
}

// GetPage returns the cached body for a URL, if still fresh.
func (p *Pages) GetPage(url string) ([]byte, bool) {
	return p.backend.Get(PageKey(url))
}

// PutPage stores a fetched body for a URL.
func (p *Pages) PutPage(url string, body []byte) error {
	return p.backend.Set(PageKey(url), body, p.ttl)
}

// Invalidate drops a single URL from the cache.
func (p *Pages) Invalidate(url string) error {
	return p.backend.Delete(PageKey(url))
}

// Clear drops every cached page.
func (p *Pages) Clear() error {
	return p.backend.Clear()
}
