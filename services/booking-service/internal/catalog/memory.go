package catalog

import (
	"context"
	"sync"

	"github.com/obelixq/obelixq/services/booking-service/internal/model"
)

// Memory is a read-mostly catalog held in process memory.
type Memory struct {
	mu         sync.RWMutex
	businesses map[string]model.Business
	services   map[string]model.Service
	users      map[string]model.User
}

func NewMemory() *Memory {
	return &Memory{
		businesses: map[string]model.Business{},
		services:   map[string]model.Service{},
		users:      map[string]model.User{},
	}
}

// Fixtures returns a catalog preloaded with the demo marketplace.
func Fixtures() *Memory {
	m := NewMemory()
	for _, b := range fixtureBusinesses {
		m.PutBusiness(b)
	}
	for _, s := range fixtureServices {
		m.PutService(s)
	}
	for _, u := range fixtureUsers {
		m.PutUser(u)
	}
	return m
}

func (m *Memory) FindBusiness(_ context.Context, id string) (model.Business, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.businesses[id]
	return b, ok, nil
}

func (m *Memory) FindService(_ context.Context, id string) (model.Service, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.services[id]
	return s, ok, nil
}

func (m *Memory) FindUser(_ context.Context, id string) (model.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *Memory) PutBusiness(b model.Business) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.businesses[b.ID] = b
}

func (m *Memory) RemoveBusiness(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.businesses, id)
}

func (m *Memory) PutService(s model.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[s.ID] = s
}

func (m *Memory) PutUser(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}
