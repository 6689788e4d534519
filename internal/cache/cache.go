package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

type item struct {
	value      []byte
	expiration int64
}

// Cache es un caché en memoria con expiración, usado como read-through por slug.
// Los valores se guardan serializados para que nadie comparta punteros con el caché.
type Cache struct {
	items map[string]item
	mu    sync.RWMutex
	ttl   time.Duration
}

// New crea el caché y arranca la limpieza periódica hasta que ctx termine.
func New(ctx context.Context, ttl time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]item),
		ttl:   ttl,
	}
	go c.cleanupExpired(ctx, 5*time.Minute)
	return c
}

// Enabled indica si el caché tiene un TTL útil.
func (c *Cache) Enabled() bool {
	return c != nil && c.ttl > 0
}

// Marshal serializa value y lo guarda bajo key.
func (c *Cache) Marshal(key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{value: data, expiration: time.Now().Add(c.ttl).UnixNano()}
	return nil
}

// Unmarshal obtiene key y lo deserializa en target. found es false si no está o expiró.
func (c *Cache) Unmarshal(key string, target interface{}) (found bool, err error) {
	if !c.Enabled() {
		return false, nil
	}

	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || time.Now().UnixNano() > it.expiration {
		return false, nil
	}
	if err := json.Unmarshal(it.value, target); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByPrefix elimina todas las claves que empiecen con prefix
func (c *Cache) DeleteByPrefix(prefix string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// size cuenta las entradas guardadas, vencidas o no.
func (c *Cache) size() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) cleanupExpired(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purge(time.Now())
		}
	}
}

func (c *Cache) purge(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, it := range c.items {
		if now.UnixNano() > it.expiration {
			delete(c.items, key)
		}
	}
}
