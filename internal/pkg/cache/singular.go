package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("cache: key not found")

// Singular caches exactly one value of type T under a fixed key.
type Singular[T any] struct {
	// m serializes MutexGetSet so valueFunc runs at most once per miss
	m sync.Mutex

	key string

	c *cache.Cache
}

func NewSingular[T any](key string) *Singular[T] {
	return &Singular[T]{
		key: key,
		c:   cache.New(cache.NoExpiration, time.Minute*10),
	}
}

func (c *Singular[T]) Get() (T, error) {
	result, ok := c.c.Get(c.key)
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return result.(T), nil
}

func (c *Singular[T]) Set(value T, expire time.Duration) {
	c.c.Set(c.key, value, expire)
}

// MutexGetSet returns the cached value, or if the key does not exist, executes valueFunc
// serially, caches its result and returns it. The boolean reports whether valueFunc ran.
func (c *Singular[T]) MutexGetSet(valueFunc func() (T, error), expire time.Duration) (T, bool, error) {
	if v, err := c.Get(); err == nil {
		return v, false, nil
	}

	c.m.Lock()
	defer c.m.Unlock()
	if v, err := c.Get(); err == nil {
		return v, false, nil
	}

	value, err := valueFunc()
	if err != nil {
		log.Error().Err(err).Str("key", c.key).Msg("failed to get value from valueFunc() in MutexGetSet")
		return value, true, err
	}

	c.Set(value, expire)
	return value, true, nil
}

func (c *Singular[T]) Delete() {
	c.c.Flush()
}
