package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
)

// MockStockCache records invalidations and can be told to fail.
type MockStockCache struct {
	mu            sync.Mutex
	counts        map[string]int64
	invalidations int
	sets          int
	getErr        error
	invalidateErr error
}

func NewMockStockCache() *MockStockCache {
	return &MockStockCache{}
}

func (m *MockStockCache) Get(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.counts == nil {
		return nil, nil
	}
	out := make(map[string]int64, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out, nil
}

func (m *MockStockCache) Set(ctx context.Context, counts map[string]int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.counts = counts
	return nil
}

func (m *MockStockCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidations++
	if m.invalidateErr != nil {
		return m.invalidateErr
	}
	m.counts = nil
	return nil
}

func (m *MockStockCache) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

func (m *MockStockCache) SetInvalidateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidateErr = err
}

func (m *MockStockCache) Invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidations
}

func (m *MockStockCache) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// MockClientRepository is an in-memory client.Repository.
type MockClientRepository struct {
	mu      sync.RWMutex
	clients map[uint]*client.Client
	nextID  uint

	createErr error
	updateErr error
	findErr   error
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		clients: make(map[uint]*client.Client),
		nextID:  1,
	}
}

func (m *MockClientRepository) Create(ctx context.Context, c *client.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.clients {
		if existing.Code() == c.Code() {
			return errors.New("UNIQUE constraint failed: clients.client_code")
		}
	}
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.clients[m.nextID] = c
	m.nextID++
	return nil
}

func (m *MockClientRepository) Update(ctx context.Context, c *client.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.clients[c.ID()]; !ok {
		return errors.New("client not found")
	}
	m.clients[c.ID()] = c
	return nil
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uint) (*client.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.clients[id], nil
}

func (m *MockClientRepository) FindByCode(ctx context.Context, code string) (*client.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, c := range m.clients {
		if c.Code() == code {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockClientRepository) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findErr != nil {
		return nil, 0, m.findErr
	}
	var out []*client.Client
	for id := uint(1); id < m.nextID; id++ {
		c, ok := m.clients[id]
		if !ok {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name()+" "+c.Code()), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (m *MockClientRepository) SetCreateError(err error) { m.createErr = err }
func (m *MockClientRepository) SetUpdateError(err error) { m.updateErr = err }
func (m *MockClientRepository) SetFindError(err error)   { m.findErr = err }
