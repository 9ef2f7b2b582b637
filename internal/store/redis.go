package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/url-shortener/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.Repository.
// IDs come from INCR on a single counter key, which is atomic across clients.
type RedisStore struct {
	client *redis.Client
	seqKey string // counter for id assignment
	prefix string // "url:" + id -> hash{url, created_at}
}

// NewRedisStore creates a new Redis-backed URL store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		seqKey: "urls:seq",
		prefix: "url:",
	}
}

func (r *RedisStore) Insert(ctx context.Context, url string) (*shortener.URLRecord, error) {
	id, err := r.client.Incr(ctx, r.seqKey).Result()
	if err != nil {
		return nil, err
	}

	record := &shortener.URLRecord{
		ID:        shortener.ID(id),
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}

	err = r.client.HSet(ctx, r.key(record.ID), map[string]interface{}{
		"url":        record.URL,
		"created_at": record.CreatedAt.UnixNano(),
	}).Err()
	if err != nil {
		// The id is burnt; gaps in the sequence are acceptable.
		return nil, err
	}

	return record, nil
}

func (r *RedisStore) FindByID(ctx context.Context, id shortener.ID) (*shortener.URLRecord, error) {
	result, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	url, ok := result["url"]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	record := &shortener.URLRecord{ID: id, URL: url}

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			record.CreatedAt = time.Unix(0, nanos).UTC()
		}
	}

	return record, nil
}

// Ping checks Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Shutdown closes the Redis client.
func (r *RedisStore) Shutdown() error {
	return r.client.Close()
}

func (r *RedisStore) key(id shortener.ID) string {
	return r.prefix + strconv.FormatUint(uint64(id), 10)
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
