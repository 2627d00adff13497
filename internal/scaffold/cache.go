package scaffold

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// CachedSource memoises successful loads of another Source. Concurrent
// loads of the same kind share one underlying read; failures are not cached.
type CachedSource struct {
	src   Source
	cache *lru.Cache[Kind, string]
	group singleflight.Group
}

// NewCachedSource wraps src with an LRU of size entries. size <= 0 caches
// every kind.
func NewCachedSource(src Source, size int) *CachedSource {
	if size <= 0 {
		size = len(Kinds())
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[Kind, string](size)
	return &CachedSource{src: src, cache: cache}
}

func (c *CachedSource) Load(ctx context.Context, kind Kind) (string, error) {
	if tmpl, ok := c.cache.Get(kind); ok {
		return tmpl, nil
	}

	v, err, _ := c.group.Do(string(kind), func() (interface{}, error) {
		tmpl, err := c.src.Load(ctx, kind)
		if err != nil {
			return "", err
		}
		c.cache.Add(kind, tmpl)
		return tmpl, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Purge drops every cached template.
func (c *CachedSource) Purge() {
	c.cache.Purge()
}
