package devlogs

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// pageEntry is one generated detail page: either a post or a cached negative
// ("no post has this slug"), plus when it was fetched.
type pageEntry struct {
	Post     Post
	NotFound bool
	Fetched  time.Time
}

// pageCache implements the cached/revalidated read pipeline for detail pages.
//
// A slug seen for the first time is fetched synchronously; the requester
// waits rather than seeing a not-found flash. Within the revalidation window
// the cached entry is served as is. Past the window the stale entry is still
// served immediately while a background goroutine refreshes it; overlapping
// staleness triggers may refresh more than once, which is acceptable.
type pageCache struct {
	mu         sync.Mutex
	entries    map[string]pageEntry
	inflight   map[string]chan struct{}
	refreshing map[string]bool

	window time.Duration
	src    ContentSource
	disk   *pageStore // optional persistence, may be nil
	logf   func(format string, args ...any)
}

// newPageCache creates a pageCache over src. When disk is non-nil, persisted
// entries are loaded (and served stale-while-revalidating) and every update
// is written through.
func newPageCache(src ContentSource, window time.Duration, disk *pageStore) *pageCache {
	c := &pageCache{
		entries:    make(map[string]pageEntry),
		inflight:   make(map[string]chan struct{}),
		refreshing: make(map[string]bool),
		window:     window,
		src:        src,
		disk:       disk,
		logf:       log.Printf,
	}
	if disk != nil {
		if saved, err := disk.LoadAll(); err != nil {
			c.logf("page store: load: %v", err)
		} else {
			c.entries = saved
		}
	}
	return c
}

func (c *pageCache) fresh(e pageEntry) bool {
	return time.Since(e.Fetched) < c.window
}

// Get returns the detail page for slug, generating it on first request.
// Returns ErrNotFound when the slug matches no post (possibly from a cached
// negative entry). Any other error means the blocking fetch failed and no
// previously generated page exists.
func (c *pageCache) Get(ctx context.Context, slug string) (Post, error) {
	for {
		c.mu.Lock()
		if e, ok := c.entries[slug]; ok {
			if !c.fresh(e) && !c.refreshing[slug] {
				c.refreshing[slug] = true
				go c.refresh(slug)
			}
			c.mu.Unlock()
			if e.NotFound {
				return Post{}, ErrNotFound
			}
			return e.Post, nil
		}
		if ch, ok := c.inflight[slug]; ok {
			// Another request is generating this slug; wait for it and
			// re-check instead of issuing a duplicate fetch.
			c.mu.Unlock()
			select {
			case <-ch:
				continue
			case <-ctx.Done():
				return Post{}, ctx.Err()
			}
		}
		ch := make(chan struct{})
		c.inflight[slug] = ch
		c.mu.Unlock()

		post, err := c.src.PostBySlug(ctx, slug)

		c.mu.Lock()
		delete(c.inflight, slug)
		close(ch)
		if err != nil && !errors.Is(err, ErrNotFound) {
			// Fetch failed outright: nothing is cached, the render fails.
			c.mu.Unlock()
			return Post{}, err
		}
		e := pageEntry{Post: post, NotFound: errors.Is(err, ErrNotFound), Fetched: time.Now()}
		c.set(slug, e)
		c.mu.Unlock()

		if e.NotFound {
			return Post{}, ErrNotFound
		}
		return post, nil
	}
}

// refresh regenerates one stale entry in the background. Failures are logged
// and the stale entry stays in place; the next stale hit tries again.
func (c *pageCache) refresh(slug string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	post, err := c.src.PostBySlug(ctx, slug)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing[slug] = false
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.logf("revalidate %q: %v", slug, err)
		return
	}
	c.set(slug, pageEntry{Post: post, NotFound: errors.Is(err, ErrNotFound), Fetched: time.Now()})
}

// set stores an entry and writes it through to disk. Callers hold c.mu.
func (c *pageCache) set(slug string, e pageEntry) {
	c.entries[slug] = e
	if c.disk != nil {
		if err := c.disk.Save(slug, e); err != nil {
			c.logf("page store: save %q: %v", slug, err)
		}
	}
}
