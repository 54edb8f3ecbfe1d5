package repository

import (
	"context"
	"errors"
	"fmt"

	"sinifplanim/domain"

	"github.com/redis/go-redis/v9"
)

type redisBlobRepository struct {
	client *redis.Client
}

// NewRedisBlobRepository backs the key-value blob collaborator with redis.
// Selected with BLOB_BACKEND=redis.
func NewRedisBlobRepository(client *redis.Client) domain.BlobStore {
	return &redisBlobRepository{
		client: client,
	}
}

func (rb *redisBlobRepository) Read(ctx context.Context, key string) (string, bool, error) {
	value, err := rb.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("could not read blob %q: %v", key, err)
	}

	return value, true, nil
}

func (rb *redisBlobRepository) Write(ctx context.Context, key, value string) error {
	if err := rb.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("could not write blob %q: %v", key, err)
	}

	return nil
}
