package standards

import (
	"container/list"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// lruCache is a small bounded least-recently-used cache of parsed
// standards, keyed by name. The public corpus's only references to a
// third-party LRU package are unused indirect manifest entries with no
// call site to imitate (see DESIGN.md), so this follows the same
// "container/list + map" idiom the standard library itself documents
// for an LRU. (The assessment cache, C9, is a plain map with TTL
// timestamps instead.)
type lruCache struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List
}

type lruEntry struct {
	key   string
	value *adri.Standard
}

func newLRUCache(capacity int) *lruCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &lruCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// get returns the cached standard and promotes it to most-recently-used.
func (c *lruCache) get(key string) (*adri.Standard, bool) {
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

// put inserts or updates key, evicting the least-recently-used entry
// if the cache is at capacity.
func (c *lruCache) put(key string, value *adri.Standard) {
	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry).value = value
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&lruEntry{key: key, value: value})
	c.items[key] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}
}
