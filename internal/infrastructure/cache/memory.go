package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gemvault/storefront/internal/domain"
)

// DefaultCleanupInterval is how often expired pages are swept from a MemoryPageStore
const DefaultCleanupInterval = time.Minute

// pageItem represents a single stored page with expiration
type pageItem struct {
	Data       []byte
	Expiration time.Time
}

// MemoryPageStore is a thread-safe in-memory page store with TTL support
type MemoryPageStore struct {
	data      map[string]pageItem
	mutex     sync.RWMutex
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryPageStore creates a new in-memory page store and starts its janitor.
// Call Close to stop the janitor.
func NewMemoryPageStore(cleanupInterval time.Duration) *MemoryPageStore {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	store := &MemoryPageStore{
		data: make(map[string]pageItem),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go store.cleanupExpired(cleanupInterval)

	return store
}

// Get retrieves a page snapshot. Each call decodes a fresh copy, so callers
// may modify the result without affecting the stored page.
func (s *MemoryPageStore) Get(ctx context.Context, id string) (*domain.PageSnapshot, error) {
	s.mutex.RLock()
	item, exists := s.data[id]
	s.mutex.RUnlock()

	if !exists || time.Now().After(item.Expiration) {
		return nil, domain.ErrPageNotFound
	}

	var snapshot domain.PageSnapshot
	if err := json.Unmarshal(item.Data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Save stores a page snapshot with TTL
func (s *MemoryPageStore) Save(ctx context.Context, snapshot *domain.PageSnapshot, ttl time.Duration) error {
	if snapshot == nil || snapshot.ID == "" {
		return domain.ErrInvalidRequest
	}

	// Serialized the same way the redis store does
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[snapshot.ID] = pageItem{
		Data:       data,
		Expiration: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a page; deleting an unknown page is not an error
func (s *MemoryPageStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, id)
	return nil
}

// cleanupExpired removes expired pages periodically until Close is called
func (s *MemoryPageStore) cleanupExpired(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.removeExpired(time.Now())
		}
	}
}

func (s *MemoryPageStore) removeExpired(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for id, item := range s.data {
		if now.After(item.Expiration) {
			delete(s.data, id)
		}
	}
}

// Close stops the janitor goroutine. It is safe to call more than once.
func (s *MemoryPageStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

// Size returns the current number of stored pages, including expired ones not yet swept
func (s *MemoryPageStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Clear removes all pages
func (s *MemoryPageStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string]pageItem)
}
