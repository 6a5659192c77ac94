// Package querycache de-duplicates requests for the same logical query.
//
// A query is identified by an ordered Key. Concurrent fetches of one key share
// a single in-flight call, and a successful result answers later fetches for
// the freshness window. Errors are never cached.
package querycache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fym/proj/internal/metrics"

	"golang.org/x/sync/singleflight"
)

type Key []string

func (k Key) String() string {
	return strings.Join(k, "\x1f")
}

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

type Status struct {
	State     State     `json:"state"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

type entry struct {
	value     any
	hasValue  bool
	fetchedAt time.Time
	lastUsed  time.Time
	state     State
	err       error
}

type Cache struct {
	log       *slog.Logger
	staleTime time.Duration
	gcTime    time.Duration
	now       func() time.Time

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]*entry

	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a cache and starts the background sweep that evicts entries
// unused for gcTime. A non-positive gcTime disables the sweep.
func New(log *slog.Logger, staleTime, gcTime time.Duration) *Cache {
	c := &Cache{
		log:       log,
		staleTime: staleTime,
		gcTime:    gcTime,
		now:       time.Now,
		entries:   make(map[string]*entry),
		stop:      make(chan struct{}),
	}
	if gcTime > 0 {
		c.wg.Add(1)
		go c.sweepLoop()
	}
	return c
}

// Fetch returns the fresh cached value for key or runs fn. The shared call is
// detached from ctx: a caller that gives up gets ctx.Err() while the call
// still completes and fills the cache for the next caller.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	k := key.String()

	if v, ok := c.fresh(k); ok {
		if typed, ok := v.(T); ok {
			metrics.QueryCacheLookups.WithLabelValues("hit").Inc()
			return typed, nil
		}
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(k, func() (any, error) {
		c.markLoading(k)
		v, err := fn(detached)
		c.store(k, v, err)
		return v, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.QueryCacheLookups.WithLabelValues("shared").Inc()
		} else {
			metrics.QueryCacheLookups.WithLabelValues("miss").Inc()
		}
		if res.Err != nil {
			return zero, res.Err
		}
		typed, _ := res.Val.(T)
		return typed, nil
	}
}

func (c *Cache) fresh(k string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok || !e.hasValue {
		return nil, false
	}
	now := c.now()
	if now.Sub(e.fetchedAt) >= c.staleTime {
		return nil, false
	}
	e.lastUsed = now
	return e.value, true
}

func (c *Cache) markLoading(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{}
		c.entries[k] = e
	}
	e.state = StateLoading
	e.lastUsed = c.now()
	metrics.QueryCacheEntries.Set(float64(len(c.entries)))
}

func (c *Cache) store(k string, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{}
		c.entries[k] = e
	}
	now := c.now()
	e.lastUsed = now
	if err != nil {
		e.state = StateError
		e.err = err
		e.hasValue = false
		e.value = nil
		c.log.Debug("query failed", "key", k, "error", err)
		return
	}
	e.state = StateSuccess
	e.err = nil
	e.value = v
	e.hasValue = true
	e.fetchedAt = now
}

// Status reports the loading state of key for UIs that render spinners.
func (c *Cache) Status(key Key) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return Status{State: StateIdle}
	}
	st := Status{State: e.state, UpdatedAt: e.lastUsed}
	if e.err != nil {
		st.Error = e.err.Error()
	}
	return st
}

// Invalidate drops the cached value for key. An in-flight call is unaffected.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.String())
	metrics.QueryCacheEntries.Set(float64(len(c.entries)))
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) sweepLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.gcTime)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if e.state != StateLoading && now.Sub(e.lastUsed) >= c.gcTime {
			delete(c.entries, k)
		}
	}
	metrics.QueryCacheEntries.Set(float64(len(c.entries)))
}

// Close stops the sweep. It is safe to call more than once.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
	})
	c.wg.Wait()
}
