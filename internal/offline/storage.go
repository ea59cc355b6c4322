package offline

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Entry is a stored response.
type Entry struct {
	Status int
	Header http.Header
	Body   []byte
}

// Cache is a bounded map from absolute URL to stored response.
type Cache struct {
	name string

	// mu makes AddAll atomic with respect to readers
	mu    sync.RWMutex
	store *lru.Cache
}

// Name returns the cache name.
func (c *Cache) Name() string { return c.name }

// Put stores e under url, evicting the least recently used entry when full.
func (c *Cache) Put(url string, e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Add(url, e)
}

// AddAll stores every entry in one step. Readers observe either none or
// all of them.
func (c *Cache) AddAll(entries map[string]*Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for url, e := range entries {
		c.store.Add(url, e)
	}
}

// Match returns the entry stored under url.
func (c *Cache) Match(url string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.store.Get(url)
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}

// Keys returns the stored URLs, oldest first.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw := c.store.Keys()
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, k.(string))
	}
	return keys
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Len()
}

// Storage is the set of named caches.
type Storage struct {
	mu     sync.Mutex
	size   int
	caches map[string]*Cache
}

// NewStorage returns an empty Storage whose caches each hold up to size
// entries.
func NewStorage(size int) *Storage {
	return &Storage{
		size:   size,
		caches: make(map[string]*Cache),
	}
}

// Size returns the per-cache entry limit.
func (s *Storage) Size() int { return s.size }

// Open returns the cache called name, creating it if needed.
func (s *Storage) Open(name string) (*Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.caches[name]; ok {
		return c, nil
	}
	store, err := lru.New(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache %q: %w", name, err)
	}
	c := &Cache{name: name, store: store}
	s.caches[name] = c
	return c, nil
}

// Keys returns the names of all caches in sorted order.
func (s *Storage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.caches))
	for name := range s.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delete removes the cache called name and reports whether it existed.
func (s *Storage) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[name]
	if !ok {
		return false
	}
	c.mu.Lock()
	c.store.Purge()
	c.mu.Unlock()
	delete(s.caches, name)
	return true
}

// Match looks url up in every cache, in name order.
func (s *Storage) Match(url string) (*Entry, bool) {
	for _, name := range s.Keys() {
		s.mu.Lock()
		c, ok := s.caches[name]
		s.mu.Unlock()
		if !ok {
			continue
		}
		if e, ok := c.Match(url); ok {
			return e, true
		}
	}
	return nil, false
}
