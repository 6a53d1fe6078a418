package cache

import "time"

type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
	Len() int
	Age(key K) (time.Duration, bool)
}
