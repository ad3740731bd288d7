package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/rl1809/luxestore/internal/core/domain"
	"github.com/rl1809/luxestore/internal/port"
)

const productCachePrefix = keyPrefix + "product:"

// CachedCatalog is a read-through Redis cache in front of another
// catalog. Concurrent misses for the same product collapse into one
// upstream lookup; absent products are not cached.
type CachedCatalog struct {
	next    port.Catalog
	client  *redis.Client
	baseTTL time.Duration
	sfg     singleflight.Group
}

func NewCachedCatalog(next port.Catalog, client *redis.Client) *CachedCatalog {
	return &CachedCatalog{
		next:    next,
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func (c *CachedCatalog) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	key := fmt.Sprintf("%s%d", productCachePrefix, id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var p domain.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		// Corrupt cache entry, fall through to the source.
	}

	v, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		product, err := c.next.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			c.cacheAsync(*product, key)
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// cacheAsync writes the cache entry off the request path with a
// jittered TTL so a batch of entries does not expire at once.
func (c *CachedCatalog) cacheAsync(product domain.Product, key string) {
	go func() {
		raw, err := json.Marshal(product)
		if err != nil {
			return
		}
		ttl := c.baseTTL + time.Duration(rand.Intn(5))*time.Minute
		c.client.Set(context.Background(), key, raw, ttl)
	}()
}
