package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rl1809/luxestore/internal/core/domain"
	"github.com/rl1809/luxestore/internal/port"
)

// maxRecentlyViewed bounds the recently-viewed ring.
const maxRecentlyViewed = 6

// BrowseService carries the two pieces of browsing state that survive
// reloads but belong to no user: the recently-viewed product ring and
// the newsletter subscriber set.
type BrowseService struct {
	store    port.KeyValueStore
	catalog  port.Catalog
	notifier port.Notifier

	mu          sync.Mutex
	recent      []int
	subscribers []string
}

// NewBrowseService loads both documents; corrupt ones reset to empty.
func NewBrowseService(ctx context.Context, store port.KeyValueStore, catalog port.Catalog, notifier port.Notifier) *BrowseService {
	s := &BrowseService{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
	}
	readDoc(ctx, store, keyRecentlyViewed, &s.recent)
	readDoc(ctx, store, keyNewsletter, &s.subscribers)
	return s
}

// RecordView returns the product and moves its id to the front of the
// recently-viewed ring: deduplicated, most recent first, capped at
// six.
func (s *BrowseService) RecordView(ctx context.Context, productID int) (*domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]int, 0, len(s.recent)+1)
	kept = append(kept, productID)
	for _, id := range s.recent {
		if id != productID {
			kept = append(kept, id)
		}
	}
	if len(kept) > maxRecentlyViewed {
		kept = kept[:maxRecentlyViewed]
	}
	s.recent = kept

	if err := writeDoc(ctx, s.store, keyRecentlyViewed, s.recent); err != nil {
		return nil, err
	}
	return product, nil
}

// RecentlyViewed resolves the ring against the catalog, most recent
// first. Ids whose product has since disappeared are skipped.
func (s *BrowseService) RecentlyViewed(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	ids := append([]int(nil), s.recent...)
	s.mu.Unlock()

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.GetProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup: %w", err)
		}
		if product != nil {
			products = append(products, *product)
		}
	}
	return products, nil
}

// Subscribe adds the email to the newsletter set. Duplicates are
// silently ignored; subscribing twice still reports success.
func (s *BrowseService) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		s.notifier.Notify("Please enter a valid email address.", port.NotifyError)
		return fmt.Errorf("%w: invalid newsletter email", ErrValidationFailed)
	}

	s.mu.Lock()
	subscribed := false
	for _, existing := range s.subscribers {
		if existing == email {
			subscribed = true
			break
		}
	}
	var err error
	if !subscribed {
		s.subscribers = append(s.subscribers, email)
		err = writeDoc(ctx, s.store, keyNewsletter, s.subscribers)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notifier.Notify("Successfully subscribed to newsletter!", port.NotifySuccess)
	return nil
}

// Subscribers returns the newsletter emails in subscription order.
func (s *BrowseService) Subscribers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.subscribers...)
}
