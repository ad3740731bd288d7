package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/luxestore/internal/core/domain"
	"github.com/rl1809/luxestore/internal/port"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOutOfStock        = errors.New("out of stock")
	ErrStockLimitReached = errors.New("stock limit reached")
	ErrItemNotFound      = errors.New("item not in cart")
	ErrEmptyCart         = errors.New("cart is empty")
)

// CartService owns the live working copy of the cart. Lines are kept
// in insertion order, at most one per product id, and persisted as a
// whole document after every mutation. Stock gating always reads the
// current catalog value, never the MaxStock snapshot on the line.
type CartService struct {
	store    port.KeyValueStore
	catalog  port.Catalog
	notifier port.Notifier
	coord    *SyncCoordinator

	mu    sync.Mutex
	lines []domain.CartLine
}

// NewCartService loads the persisted cart. A corrupt cart document
// yields an empty cart, never an error.
func NewCartService(ctx context.Context, store port.KeyValueStore, catalog port.Catalog, notifier port.Notifier) *CartService {
	s := &CartService{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
	}
	readDoc(ctx, store, keyCart, &s.lines)
	return s
}

// AttachCoordinator wires the sync coordinator in after construction;
// the coordinator also needs the user registry, which does not exist
// yet when the ledgers are built.
func (s *CartService) AttachCoordinator(c *SyncCoordinator) {
	s.coord = c
}

// Add puts one unit of the product into the cart: a new line with
// quantity 1, or an increment on the existing line. Each call is one
// unit of intent, repeated calls accumulate.
func (s *CartService) Add(ctx context.Context, productID int) error {
	msg, err := s.add(ctx, productID)
	if err != nil {
		s.notifier.Notify(errorMessage(err), port.NotifyError)
		return err
	}
	s.notifier.Notify(msg, port.NotifySuccess)
	s.pushWorkingState(ctx)
	return nil
}

func (s *CartService) add(ctx context.Context, productID int) (string, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("catalog lookup: %w", err)
	}
	if product == nil {
		return "", ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if line := s.find(productID); line != nil {
		if line.Quantity >= product.Stock {
			return "", ErrStockLimitReached
		}
		line.Quantity++
		return "Quantity updated in cart!", s.persist(ctx)
	}

	if product.Stock <= 0 {
		return "", ErrOutOfStock
	}
	s.lines = append(s.lines, domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  1,
		MaxStock:  product.Stock,
	})
	return "Item added to cart!", s.persist(ctx)
}

// Adjust changes a line's quantity by delta, which must be +1 or -1.
// Incrementing re-checks live stock; decrementing a quantity-1 line
// removes it.
func (s *CartService) Adjust(ctx context.Context, productID, delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("adjust delta must be +1 or -1, got %d", delta)
	}
	msg, err := s.adjust(ctx, productID, delta)
	if err != nil {
		s.notifier.Notify(errorMessage(err), port.NotifyError)
		return err
	}
	s.notifier.Notify(msg, port.NotifySuccess)
	s.pushWorkingState(ctx)
	return nil
}

func (s *CartService) adjust(ctx context.Context, productID, delta int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.find(productID)
	if line == nil {
		return "", ErrItemNotFound
	}

	if delta > 0 {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return "", fmt.Errorf("catalog lookup: %w", err)
		}
		if product == nil {
			return "", ErrProductNotFound
		}
		if line.Quantity >= product.Stock {
			return "", ErrStockLimitReached
		}
		line.Quantity++
		return "Cart updated!", s.persist(ctx)
	}

	if line.Quantity <= 1 {
		s.removeLine(productID)
		return "Item removed from cart.", s.persist(ctx)
	}
	line.Quantity--
	return "Cart updated!", s.persist(ctx)
}

// Remove drops the line for productID. Removing an absent line is a
// no-op, not an error.
func (s *CartService) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	s.removeLine(productID)
	err := s.persist(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notifier.Notify("Item removed from cart.", port.NotifySuccess)
	s.pushWorkingState(ctx)
	return nil
}

// Total recomputes the cart total on every call.
func (s *CartService) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.lines)
}

// Items returns the cart lines in insertion order.
func (s *CartService) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Contains reports whether a line for productID exists.
func (s *CartService) Contains(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(productID) != nil
}

// LoadFrom bulk-replaces the working set and persists it. Used by the
// sync coordinator when a user logs in.
func (s *CartService) LoadFrom(ctx context.Context, lines []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make([]domain.CartLine, len(lines))
	copy(s.lines, lines)
	return s.persist(ctx)
}

// Clear empties the working set and persists the empty cart.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.lines = nil
	err := s.persist(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.pushWorkingState(ctx)
	return nil
}

// Checkout builds an order receipt from the current lines and clears
// the cart. There is no cancellation path once it succeeds; nothing is
// submitted to a payment backend.
func (s *CartService) Checkout(ctx context.Context, shipping domain.ShippingDetails) (*domain.OrderReceipt, error) {
	receipt, err := s.checkout(ctx, shipping)
	if err != nil {
		s.notifier.Notify(errorMessage(err), port.NotifyError)
		return nil, err
	}
	s.notifier.Notify(fmt.Sprintf("Order placed successfully! Order ID: %s", receipt.OrderID), port.NotifySuccess)
	s.pushWorkingState(ctx)
	return receipt, nil
}

func (s *CartService) checkout(ctx context.Context, shipping domain.ShippingDetails) (*domain.OrderReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return nil, ErrEmptyCart
	}

	receipt := &domain.OrderReceipt{
		OrderID:   "ORD-" + uuid.New().String(),
		Items:     append([]domain.CartLine(nil), s.lines...),
		Total:     total(s.lines),
		Shipping:  shipping,
		OrderDate: time.Now(),
	}

	s.lines = nil
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *CartService) find(productID int) *domain.CartLine {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return &s.lines[i]
		}
	}
	return nil
}

func (s *CartService) removeLine(productID int) {
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	s.lines = kept
}

// persist writes the full cart document. Callers hold s.mu.
func (s *CartService) persist(ctx context.Context) error {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return writeDoc(ctx, s.store, keyCart, lines)
}

// pushWorkingState mirrors the mutation into the logged-in user's
// record. Must be called without holding s.mu, the coordinator reads
// the ledger back through Items.
func (s *CartService) pushWorkingState(ctx context.Context) {
	if s.coord != nil {
		s.coord.PushIfAuthenticated(ctx)
	}
}

func total(lines []domain.CartLine) int {
	sum := 0
	for _, line := range lines {
		sum += line.Price * line.Quantity
	}
	return sum
}
