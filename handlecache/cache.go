// Package handlecache memoizes per-category output handles.
//
// GetOrCreate never runs the create function twice for the same key
// while a previous call succeeded: hits are served from a sync.Map
// without locking, and misses are collapsed per key with singleflight,
// so goroutines racing on an unseen category wait for one creation and
// share its result. Creation errors are handed to the waiters of that
// flight and are not remembered.
package handlecache

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache maps category names to handles of type H.
type Cache[H any] struct {
	create  func(category string) (H, error)
	handles sync.Map // string -> H
	flights singleflight.Group
	size    atomic.Int64
}

// New returns an empty cache that builds missing handles with create.
func New[H any](create func(category string) (H, error)) *Cache[H] {
	return &Cache[H]{create: create}
}

// Get returns the cached handle for category without creating one.
func (c *Cache[H]) Get(category string) (H, bool) {
	if v, ok := c.handles.Load(category); ok {
		return v.(H), true
	}
	var zero H
	return zero, false
}

// GetOrCreate returns the handle for category, creating it on first use.
func (c *Cache[H]) GetOrCreate(category string) (H, error) {
	if v, ok := c.handles.Load(category); ok {
		return v.(H), nil
	}

	v, err, _ := c.flights.Do(category, func() (interface{}, error) {
		// A flight that finished between our Load and Do has already stored it.
		if v, ok := c.handles.Load(category); ok {
			return v, nil
		}
		h, err := c.create(category)
		if err != nil {
			return nil, err
		}
		c.handles.Store(category, h)
		c.size.Add(1)
		return h, nil
	})
	if err != nil {
		var zero H
		return zero, err
	}
	return v.(H), nil
}

// Len returns the number of cached handles.
func (c *Cache[H]) Len() int {
	return int(c.size.Load())
}

// Range calls fn for each cached handle until fn returns false.
func (c *Cache[H]) Range(fn func(category string, h H) bool) {
	c.handles.Range(func(k, v any) bool {
		return fn(k.(string), v.(H))
	})
}
