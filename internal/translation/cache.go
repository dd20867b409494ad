package translation

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"moveasy-api/internal/telemetry"
)

// PersistentStore is the durable tier of the translation cache.
type PersistentStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	DeleteSuffix(ctx context.Context, suffix string) (int64, error)
	Clear(ctx context.Context) error
}

// Cache is a two-tier translation cache: an in-memory TTL map in front of an
// optional persistent store. Keys are (text, target language).
type Cache struct {
	memory *gocache.Cache
	store  PersistentStore
}

// NewCache creates a cache whose memory entries expire after ttl. store may be nil.
func NewCache(ttl time.Duration, store PersistentStore) *Cache {
	return &Cache{
		memory: gocache.New(ttl, 2*ttl),
		store:  store,
	}
}

func cacheKey(text, lang string) string {
	return text + ":" + lang
}

// Get returns the cached translation of text into lang.
// A persistent hit is promoted into memory.
func (c *Cache) Get(ctx context.Context, text, lang string) (string, bool) {
	key := cacheKey(text, lang)
	if v, ok := c.memory.Get(key); ok {
		telemetry.CacheHit("translation_memory", true)
		return v.(string), true
	}
	telemetry.CacheHit("translation_memory", false)

	if c.store == nil {
		return "", false
	}
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("translation cache: persistent read failed")
		return "", false
	}
	telemetry.CacheHit("translation_persistent", ok)
	if ok {
		c.memory.SetDefault(key, v)
	}
	return v, ok
}

// Set writes the translation to both tiers. A persistent write failure is logged only.
func (c *Cache) Set(ctx context.Context, text, lang, translated string) {
	key := cacheKey(text, lang)
	c.memory.SetDefault(key, translated)
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, key, translated); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("translation cache: persistent write failed")
	}
}

// ClearLanguage drops every cached translation into lang.
func (c *Cache) ClearLanguage(ctx context.Context, lang string) error {
	suffix := ":" + lang
	for key := range c.memory.Items() {
		if strings.HasSuffix(key, suffix) {
			c.memory.Delete(key)
		}
	}
	if c.store == nil {
		return nil
	}
	_, err := c.store.DeleteSuffix(ctx, suffix)
	return err
}

// Clear drops every cached translation.
func (c *Cache) Clear(ctx context.Context) error {
	c.memory.Flush()
	if c.store == nil {
		return nil
	}
	return c.store.Clear(ctx)
}
