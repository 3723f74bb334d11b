package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// renderedPage is a fully serialized response body.
type renderedPage struct {
	Body   []byte
	Status int
	ETag   string
}

func newRenderedPage(body []byte, status int) *renderedPage {
	return &renderedPage{
		Body:   body,
		Status: status,
		ETag:   fmt.Sprintf(`"%016x"`, xxhash.Sum64(body)),
	}
}

// pageCache keeps successful renders by page key. Keys name the page, not
// the request path, so the cache holds at most one entry per page.
// Concurrent misses for the same key share one render.
type pageCache struct {
	enabled bool
	mu      sync.RWMutex
	pages   map[string]*renderedPage
	group   singleflight.Group
}

func newPageCache(enabled bool) *pageCache {
	return &pageCache{
		enabled: enabled,
		pages:   make(map[string]*renderedPage),
	}
}

// get returns the page for key, calling build on a miss. hit reports
// whether the page came from the cache. Only 200 responses are stored.
func (c *pageCache) get(key string, build func() (*renderedPage, error)) (page *renderedPage, hit bool, err error) {
	if !c.enabled {
		page, err = build()
		return page, false, err
	}

	c.mu.RLock()
	page, ok := c.pages[key]
	c.mu.RUnlock()
	if ok {
		return page, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		p, err := build()
		if err != nil {
			return nil, err
		}
		if p.Status == http.StatusOK {
			c.mu.Lock()
			c.pages[key] = p
			c.mu.Unlock()
		}
		return p, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*renderedPage), false, nil
}

// len reports the number of cached pages.
func (c *pageCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
