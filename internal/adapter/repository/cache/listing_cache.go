package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	indexKey = "listings:index"
	indexTTL = 5 * time.Minute
)

// ListingCache caches the full listing index in Redis. Writes to any
// listing invalidate it.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// GetAll returns (nil, nil) on a cache miss.
func (c *ListingCache) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	data, err := c.client.Get(ctx, indexKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var listings []*domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *ListingCache) SetAll(ctx context.Context, listings []*domain.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, indexKey, data, indexTTL).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, indexKey).Err()
}
