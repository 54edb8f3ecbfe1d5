package repository

import (
	"context"
	"errors"
	"sync"

	"sinifplanim/domain"
)

// MemoryBlobStore keeps blobs in a map. It stands in for a real backend in
// tests and in local development without postgres or redis.
type MemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string]string

	// FailWrites makes every Write return an error, for exercising the
	// applied-but-not-persisted path.
	FailWrites bool

	// WriteCount counts Write calls, including failed ones.
	WriteCount int
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs: make(map[string]string),
	}
}

func (mb *MemoryBlobStore) Read(ctx context.Context, key string) (string, bool, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	value, ok := mb.blobs[key]
	return value, ok, nil
}

func (mb *MemoryBlobStore) Write(ctx context.Context, key, value string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.WriteCount++
	if mb.FailWrites {
		return errors.New("write rejected")
	}

	mb.blobs[key] = value
	return nil
}

// Seed stores a raw blob directly, bypassing the write counters.
func (mb *MemoryBlobStore) Seed(key, value string) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.blobs[key] = value
}

var _ domain.BlobStore = (*MemoryBlobStore)(nil)
