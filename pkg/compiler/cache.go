package compiler

import (
	"container/list"
	"sync"

	"github.com/vango-dev/routematch/pkg/routeparser"
)

type cacheKey struct {
	matcher string
	mode    routeparser.FieldMode
}

type cacheItem struct {
	key   cacheKey
	route *Route
}

// routeCache is an LRU of compiled routes.
type routeCache struct {
	mu      sync.Mutex
	size    int
	entries map[cacheKey]*list.Element
	order   *list.List // front = most recent
}

func newRouteCache(size int) *routeCache {
	return &routeCache{
		size:    size,
		entries: make(map[cacheKey]*list.Element),
		order:   list.New(),
	}
}

func (c *routeCache) get(key cacheKey) (*Route, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheItem).route, true
}

// add stores route and returns the number of entries afterwards.
func (c *routeCache) add(key cacheKey, route *Route) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheItem).route = route
		c.order.MoveToFront(elem)
		return len(c.entries)
	}

	for c.order.Len() >= c.size {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheItem).key)
	}

	c.entries[key] = c.order.PushFront(&cacheItem{key: key, route: route})
	return len(c.entries)
}

func (c *routeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *routeCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element)
	c.order = list.New()
}
