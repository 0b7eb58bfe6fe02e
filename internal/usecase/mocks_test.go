package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gemvault/storefront/internal/domain"
)

// MockProductSource is a mock implementation of domain.ProductSource
type MockProductSource struct {
	products []domain.Product
	err      error
	calls    atomic.Int32
}

func NewMockProductSource(products []domain.Product, err error) *MockProductSource {
	return &MockProductSource{products: products, err: err}
}

func (m *MockProductSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

// MockPageRepository is a mock implementation of domain.PageRepository
type MockPageRepository struct {
	mu        sync.Mutex
	data      map[string]domain.PageSnapshot
	getError  error
	saveError error
	lastTTL   time.Duration
	saves     int
}

func NewMockPageRepository() *MockPageRepository {
	return &MockPageRepository{
		data: make(map[string]domain.PageSnapshot),
	}
}

func (m *MockPageRepository) Get(ctx context.Context, id string) (*domain.PageSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	snapshot, ok := m.data[id]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	return &snapshot, nil
}

func (m *MockPageRepository) Save(ctx context.Context, snapshot *domain.PageSnapshot, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.data[snapshot.ID] = *snapshot
	m.lastTTL = ttl
	m.saves++
	return nil
}

func (m *MockPageRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *MockPageRepository) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
