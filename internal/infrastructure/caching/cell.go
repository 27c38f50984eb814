// Package caching provides the single-slot TTL cache cells used by the
// external feed fetchers.
package caching

import (
	"sync"
	"time"
)

// Cell is a single-slot cache holding one value and its fetch timestamp.
// Get honors the TTL; Last ignores it so a fetcher can degrade to the
// last-known-good value when the upstream fails. Concurrent misses may race
// into duplicate upstream calls; the last writer wins, which is acceptable
// because every writer stores equally fresh data.
type Cell[T any] struct {
	mu        sync.RWMutex
	ttl       time.Duration
	now       func() time.Time
	data      T
	fetchedAt time.Time
	populated bool
}

// NewCell creates an empty cell with the given TTL.
func NewCell[T any](ttl time.Duration) *Cell[T] {
	return NewCellWithClock[T](ttl, time.Now)
}

// NewCellWithClock creates a cell with an injected clock for tests.
func NewCellWithClock[T any](ttl time.Duration, now func() time.Time) *Cell[T] {
	return &Cell[T]{ttl: ttl, now: now}
}

// Get returns the cached value iff it was stored less than one TTL ago.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	if !c.populated {
		return zero, false
	}
	if c.now().Sub(c.fetchedAt) >= c.ttl {
		return zero, false
	}
	return c.data, true
}

// Last returns the most recently stored value regardless of age.
func (c *Cell[T]) Last() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated {
		var zero T
		return zero, false
	}
	return c.data, true
}

// Set stores a value and stamps the current time.
func (c *Cell[T]) Set(data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = data
	c.fetchedAt = c.now()
	c.populated = true
}

// FetchedAt reports when the current value was stored, zero if empty.
func (c *Cell[T]) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
