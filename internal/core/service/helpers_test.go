package service

import (
	"context"
	"sync"

	"github.com/rl1809/luxestore/internal/core/domain"
	"github.com/rl1809/luxestore/internal/port"
)

// Mock KeyValueStore
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memStore) put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Mock Catalog
type staticCatalog struct {
	mu       sync.Mutex
	products map[int]domain.Product
}

func newStaticCatalog(products ...domain.Product) *staticCatalog {
	c := &staticCatalog{products: make(map[int]domain.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *staticCatalog) GetProduct(_ context.Context, id int) (*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *staticCatalog) setStock(id, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.products[id]
	p.Stock = stock
	c.products[id] = p
}

// Mock Notifier / Celebrator
type notification struct {
	message string
	kind    port.NotifyKind
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []notification
	celebrations  int
}

func (n *recordingNotifier) Notify(message string, kind port.NotifyKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification{message: message, kind: kind})
}

func (n *recordingNotifier) Celebrate() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.celebrations++
}

func (n *recordingNotifier) last() (notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notifications) == 0 {
		return notification{}, false
	}
	return n.notifications[len(n.notifications)-1], true
}

func (n *recordingNotifier) celebrated() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.celebrations
}

func testProduct(id, stock int) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        "Product",
		Category:    "electronics",
		Price:       1000,
		Image:       "https://example.com/p.jpg",
		Description: "A product.",
		Stock:       stock,
	}
}
