package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rl1809/luxestore/internal/core/domain"
	"github.com/rl1809/luxestore/internal/port"
)

// WishlistService owns the live working copy of the wishlist. Entries
// are full product snapshots, at most one per product id. There is no
// stock gating; the only toggle precondition is that the product
// exists.
type WishlistService struct {
	store    port.KeyValueStore
	catalog  port.Catalog
	notifier port.Notifier
	coord    *SyncCoordinator
	now      func() time.Time

	mu      sync.Mutex
	entries []domain.WishlistEntry
}

// NewWishlistService loads the persisted wishlist; corrupt documents
// yield an empty wishlist.
func NewWishlistService(ctx context.Context, store port.KeyValueStore, catalog port.Catalog, notifier port.Notifier) *WishlistService {
	s := &WishlistService{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		now:      time.Now,
	}
	readDoc(ctx, store, keyWishlist, &s.entries)
	return s
}

func (s *WishlistService) AttachCoordinator(c *SyncCoordinator) {
	s.coord = c
}

// Toggle adds the product to the wishlist, or removes it when already
// present. It reports whether the product ended up in the wishlist.
func (s *WishlistService) Toggle(ctx context.Context, productID int) (added bool, err error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("catalog lookup: %w", err)
	}
	if product == nil {
		s.notifier.Notify(errorMessage(ErrProductNotFound), port.NotifyError)
		return false, ErrProductNotFound
	}

	added, err = s.toggle(ctx, product)
	if err != nil {
		return false, err
	}

	if added {
		s.notifier.Notify(fmt.Sprintf("%s added to wishlist!", product.Name), port.NotifySuccess)
	} else {
		s.notifier.Notify(fmt.Sprintf("%s removed from wishlist", product.Name), port.NotifySuccess)
	}
	if s.coord != nil {
		s.coord.PushIfAuthenticated(ctx)
	}
	return added, nil
}

func (s *WishlistService) toggle(ctx context.Context, product *domain.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.entries {
		if entry.ProductID == product.ID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return false, s.persist(ctx)
		}
	}

	s.entries = append(s.entries, domain.WishlistEntry{
		ProductID:   product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price,
		Image:       product.Image,
		Description: product.Description,
		Stock:       product.Stock,
		AddedAt:     s.now(),
	})
	return true, s.persist(ctx)
}

// List returns the entries most-recently-added first. This is the
// display order; Entries keeps insertion order for syncing.
func (s *WishlistService) List() []domain.WishlistEntry {
	out := s.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}

// Entries returns the working set in insertion order.
func (s *WishlistService) Entries() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.WishlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Contains reports whether the product is in the wishlist.
func (s *WishlistService) Contains(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of saved entries.
func (s *WishlistService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// LoadFrom bulk-replaces the working set and persists it.
func (s *WishlistService) LoadFrom(ctx context.Context, entries []domain.WishlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]domain.WishlistEntry, len(entries))
	copy(s.entries, entries)
	return s.persist(ctx)
}

// Clear empties the working set and persists it.
func (s *WishlistService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = nil
	err := s.persist(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if s.coord != nil {
		s.coord.PushIfAuthenticated(ctx)
	}
	return nil
}

// persist writes the full wishlist document. Callers hold s.mu.
func (s *WishlistService) persist(ctx context.Context) error {
	entries := s.entries
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	return writeDoc(ctx, s.store, keyWishlist, entries)
}
