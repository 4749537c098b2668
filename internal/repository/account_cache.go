package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
)

const accountViewKeyPrefix = "account:view:"

// ViewCache is a generic JSON-backed Redis cache for read model projections.
// Bind it to a specific view type T; each instance holds a Redis client and an
// optional TTL (pass 0 for keys that should not expire).
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewViewCache[T any](client *goredis.Client, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get retrieves and unmarshals a value from Redis.
// Returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it in Redis under key.
// Errors are logged rather than returned — a cache write miss is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("ViewCache: marshal error for key %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("ViewCache: write error for key %s: %v", key, err)
	}
}

// AccountViewCache keeps the read-optimised account projection in Redis.
// It is written through after every successful account mutation and consulted
// by the snapshot query path before falling back to PostgreSQL.
type AccountViewCache struct {
	cache *ViewCache[models.AccountView]
}

func NewAccountViewCache(client *goredis.Client, ttl time.Duration) *AccountViewCache {
	return &AccountViewCache{cache: NewViewCache[models.AccountView](client, ttl)}
}

func accountViewKey(id int64) string {
	return fmt.Sprintf("%s%d", accountViewKeyPrefix, id)
}

func (c *AccountViewCache) Put(ctx context.Context, view *models.AccountView) {
	c.cache.Set(ctx, accountViewKey(view.ID), view)
}

func (c *AccountViewCache) Get(ctx context.Context, id int64) (*models.AccountView, bool) {
	return c.cache.Get(ctx, accountViewKey(id))
}
