package credentials

import (
	"sync"
	"time"
)

var (
	_ CookieStore  = (*MemoryCookies)(nil)
	_ DurableStore = (*MemoryDurable)(nil)
)

type cookieEntry struct {
	value   string
	expires time.Time // zero means no expiry
}

// MemoryCookies is an in-memory CookieStore. Safe for concurrent use.
type MemoryCookies struct {
	mu      sync.Mutex
	entries map[string]cookieEntry
	now     func() time.Time
}

// NewMemoryCookies creates an empty cookie store.
func NewMemoryCookies() *MemoryCookies {
	return &MemoryCookies{
		entries: make(map[string]cookieEntry),
		now:     time.Now,
	}
}

func (m *MemoryCookies) Get(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[name]
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.entries, name)
		return "", false
	}
	return e.value, true
}

func (m *MemoryCookies) Set(name, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := cookieEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[name] = e
}

func (m *MemoryCookies) Delete(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, name)
}

// MemoryDurable is an in-memory DurableStore. It does not actually survive
// restarts; use FileDurable for that.
type MemoryDurable struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryDurable creates an empty durable store.
func NewMemoryDurable() *MemoryDurable {
	return &MemoryDurable{values: make(map[string]string)}
}

func (m *MemoryDurable) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryDurable) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryDurable) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
