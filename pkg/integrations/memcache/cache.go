package memcache

import (
	"sync"
	"time"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/cache"
)

var _ cache.Cache[string, any] = (*Cache[string, any])(nil)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

type Cache[K comparable, V any] struct {
	data  map[K]entry[V]
	mutex sync.RWMutex
	now   func() time.Time
}

type Option[K comparable, V any] func(*Cache[K, V])

// WithNow overrides the time source used to stamp entries.
func WithNow[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.now = now
	}
}

func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		data: make(map[K]entry[V]),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	e, ok := c.data[key]
	return e.value, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data[key] = entry[V]{value: value, storedAt: c.now()}
}

func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.data, key)
}

// Age reports how long ago key was last written.
func (c *Cache[K, V]) Age(key K) (time.Duration, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	e, ok := c.data[key]
	if !ok {
		return 0, false
	}
	return c.now().Sub(e.storedAt), true
}

func (c *Cache[K, V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}
