package service

import (
	"context"

	"github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// QueryEmbeddingCache caches query embeddings keyed by the trimmed query
// text, so repeated searches for the same phrase skip the model server.
// Misses go through singleflight: a burst of identical queries triggers one
// embedding call and every waiter shares its result.
type QueryEmbeddingCache struct {
	lru   *lru.Cache[string, []float32]
	group singleflight.Group
}

// NewQueryEmbeddingCache creates a cache holding up to maxEntries query
// embeddings, evicting the least recently searched first.
func NewQueryEmbeddingCache(maxEntries int) (*QueryEmbeddingCache, error) {
	lruCache, err := lru.New[string, []float32](maxEntries)
	if err != nil {
		return nil, err
	}

	return &QueryEmbeddingCache{lru: lruCache}, nil
}

// Get returns the embedding for query, calling embed on cache miss.
// Concurrent misses for the same query coalesce into a single embed call;
// failed loads are not cached, so the next search retries the model.
func (c *QueryEmbeddingCache) Get(ctx context.Context, query string, embed func(context.Context, string) ([]float32, error)) ([]float32, error) {
	if v, ok := c.lru.Get(query); ok {
		return v, nil
	}

	val, err, _ := c.group.Do(query, func() (any, error) {
		embedding, embedErr := embed(ctx, query)
		if embedErr != nil {
			return nil, embedErr
		}

		c.lru.Add(query, embedding)

		return embedding, nil
	})
	if err != nil {
		return nil, err
	}

	return val.([]float32), nil
}

// Invalidate drops the cached embedding for query, forcing a re-embed on
// the next search. Used when the embedding model changes.
func (c *QueryEmbeddingCache) Invalidate(query string) {
	c.lru.Remove(query)
}

// Len returns the number of cached query embeddings.
func (c *QueryEmbeddingCache) Len() int {
	return c.lru.Len()
}
