package lsh

import (
	"container/list"
)

type bucketKey struct {
	stage  int
	bucket int
}

type cacheEntry struct {
	key    bucketKey
	bucket *Bucket
	dirty  bool
}

// bucketCache is the bounded LRU of loaded buckets for the disk index.
// Eviction is write-back: a dirty entry is flushed synchronously before it
// is dropped, so eviction order never loses completed inserts. The caller
// serializes all access; the cache itself holds no lock.
type bucketCache struct {
	limit     int
	items     map[bucketKey]*list.Element
	evictList *list.List
	flush     func(key bucketKey, b *Bucket) error
}

func newBucketCache(limit int, flush func(key bucketKey, b *Bucket) error) *bucketCache {
	return &bucketCache{
		limit:     limit,
		items:     make(map[bucketKey]*list.Element),
		evictList: list.New(),
		flush:     flush,
	}
}

// setLimit changes the bound and evicts down to it immediately.
func (c *bucketCache) setLimit(limit int) error {
	c.limit = limit
	return c.evict()
}

func (c *bucketCache) get(key bucketKey) (*Bucket, bool) {
	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)
		return el.Value.(*cacheEntry).bucket, true
	}
	return nil, false
}

// put inserts a freshly loaded bucket and evicts past the limit. A flush
// failure during eviction propagates; the entry that failed stays cached so
// its content is not lost.
func (c *bucketCache) put(key bucketKey, b *Bucket) error {
	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)
		el.Value.(*cacheEntry).bucket = b
		return nil
	}
	el := c.evictList.PushFront(&cacheEntry{key: key, bucket: b})
	c.items[key] = el
	return c.evict()
}

// markDirty flags a cached bucket as needing a flush before eviction.
func (c *bucketCache) markDirty(key bucketKey) {
	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).dirty = true
	}
}

func (c *bucketCache) evict() error {
	if c.limit <= 0 {
		return nil
	}
	for len(c.items) > c.limit {
		el := c.evictList.Back()
		if el == nil {
			return nil
		}
		entry := el.Value.(*cacheEntry)
		if entry.dirty {
			if err := c.flush(entry.key, entry.bucket); err != nil {
				return err
			}
			entry.dirty = false
		}
		c.evictList.Remove(el)
		delete(c.items, entry.key)
	}
	return nil
}

// flushAll writes every dirty entry. Entries flushed before a failure stay
// clean; the failing entry keeps its dirty flag so a retry covers it.
func (c *bucketCache) flushAll() error {
	for el := c.evictList.Front(); el != nil; el = el.Next() {
		entry := el.Value.(*cacheEntry)
		if !entry.dirty {
			continue
		}
		if err := c.flush(entry.key, entry.bucket); err != nil {
			return err
		}
		entry.dirty = false
	}
	return nil
}

// release drops every entry without flushing. Only valid after flushAll.
func (c *bucketCache) release() {
	c.items = make(map[bucketKey]*list.Element)
	c.evictList.Init()
}

func (c *bucketCache) len() int {
	return len(c.items)
}
