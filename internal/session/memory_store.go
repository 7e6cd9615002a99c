package session

import (
	"context"
	"sync"
)

// MemoryStore implements Store with in-memory storage. It backs tests and
// single-instance runs without a database; the per-token lock gives the same
// serialization guarantee as the Postgres row lock.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	locks   map[string]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[token], nil
}

func (s *MemoryStore) Update(_ context.Context, token string, fn func(rec *Record) error) error {
	lock := s.tokenLock(token)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	rec := s.records[token]
	s.mu.RUnlock()

	if err := fn(&rec); err != nil {
		return err
	}

	s.mu.Lock()
	s.records[token] = rec
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, token)
	return nil
}

func (s *MemoryStore) tokenLock(token string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[token]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[token] = lock
	}
	return lock
}
