package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Store is a byte-oriented TTL cache used as a read-through layer in front
// of list queries. Namespaces are invalidated wholesale by bumping their
// version; entries written under an older version simply stop being
// addressable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
	Version(ctx context.Context, ns string) int64
	Bump(ctx context.Context, ns string)
}

// ListKey builds the cache key for a filtered list under a namespace
// version.
func ListKey(ns string, ver int64, query string) string {
	return fmt.Sprintf("%s:v%d:list:%s", ns, ver, query)
}

type Memory struct {
	mu   sync.RWMutex
	ttl  time.Duration
	m    map[string]entry
	vers map[string]int64
}

type entry struct {
	val []byte
	exp time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Memory{
		ttl:  ttl,
		m:    make(map[string]entry),
		vers: make(map[string]int64),
	}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	now := time.Now()
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}

	return e.val, true
}

func (c *Memory) Set(_ context.Context, key string, val []byte) {
	c.mu.Lock()
	c.m[key] = entry{val: val, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Memory) Version(_ context.Context, ns string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vers[ns]
}

func (c *Memory) Bump(_ context.Context, ns string) {
	c.mu.Lock()
	c.vers[ns]++
	c.mu.Unlock()
}
