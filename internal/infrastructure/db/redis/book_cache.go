package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bookworks/book-app/internal/core/domain"
)

const bookTTL = 5 * time.Minute

// BookCache is a best-effort read-through cache for single-book lookups.
// Key format: book:<id>. Any Redis or decode failure is reported as a miss;
// the repository remains the source of truth.
type BookCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewBookCache creates a BookCache wrapping the given Redis client.
func NewBookCache(client *redis.Client, log zerolog.Logger) *BookCache {
	return &BookCache{client: client, log: log}
}

func (c *BookCache) Get(ctx context.Context, id string) (*domain.Book, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("book_id", id).Msg("book cache read failed")
		}
		return nil, false
	}

	var book domain.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		c.log.Warn().Err(err).Str("book_id", id).Msg("book cache entry corrupt, dropping")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &book, true
}

func (c *BookCache) Set(ctx context.Context, book *domain.Book) {
	raw, err := json.Marshal(book)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(book.ID), raw, bookTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("book_id", book.ID).Msg("book cache write failed")
	}
}

func (c *BookCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.log.Warn().Err(err).Str("book_id", id).Msg("book cache invalidation failed")
	}
}

func (c *BookCache) key(id string) string {
	return "book:" + id
}
