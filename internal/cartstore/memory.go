package cartstore

import (
	"context"
	"sync"
)

type memoryKey struct {
	userID int32
	key    string
}

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[memoryKey][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[memoryKey][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, userID int32, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[memoryKey{userID, key}]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, userID int32, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[memoryKey{userID, key}] = stored
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, userID int32, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, memoryKey{userID, key})
	return nil
}
