package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rl1809/luxestore/internal/core/domain"
	"github.com/rl1809/luxestore/internal/port"
)

func newCartForTest(products ...domain.Product) (*CartService, *memStore, *staticCatalog, *recordingNotifier) {
	store := newMemStore()
	catalog := newStaticCatalog(products...)
	notifier := &recordingNotifier{}
	cart := NewCartService(context.Background(), store, catalog, notifier)
	return cart, store, catalog, notifier
}

func TestAdd_OutOfStock(t *testing.T) {
	cart, _, _, _ := newCartForTest(testProduct(1, 0))

	err := cart.Add(context.Background(), 1)
	if !errors.Is(err, ErrOutOfStock) {
		t.Errorf("expected ErrOutOfStock, got: %v", err)
	}
	if len(cart.Items()) != 0 {
		t.Errorf("expected cart unchanged, got %d lines", len(cart.Items()))
	}
}

func TestAdd_ProductNotFound(t *testing.T) {
	cart, _, _, _ := newCartForTest()

	err := cart.Add(context.Background(), 42)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestAdd_AccumulatesOneLine(t *testing.T) {
	cart, _, _, _ := newCartForTest(testProduct(1, 15))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := cart.Add(ctx, 1); err != nil {
			t.Fatalf("add %d failed: %v", i+1, err)
		}
	}

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", items[0].Quantity)
	}
	if cart.Total() != 3*1000 {
		t.Errorf("expected total 3000, got %d", cart.Total())
	}
}

func TestAdd_StockLimitReached(t *testing.T) {
	cart, _, _, _ := newCartForTest(testProduct(1, 2))
	ctx := context.Background()

	cart.Add(ctx, 1)
	cart.Add(ctx, 1)

	err := cart.Add(ctx, 1)
	if !errors.Is(err, ErrStockLimitReached) {
		t.Errorf("expected ErrStockLimitReached, got: %v", err)
	}
	if items := cart.Items(); items[0].Quantity != 2 {
		t.Errorf("expected quantity unchanged at 2, got %d", items[0].Quantity)
	}
}

func TestAdjust_IncrementChecksLiveStock(t *testing.T) {
	cart, _, catalog, _ := newCartForTest(testProduct(1, 5))
	ctx := context.Background()

	cart.Add(ctx, 1)

	// Stock drops after the line was created; the MaxStock snapshot on
	// the line still says 5 but the gate reads the catalog.
	catalog.setStock(1, 1)

	err := cart.Adjust(ctx, 1, 1)
	if !errors.Is(err, ErrStockLimitReached) {
		t.Errorf("expected ErrStockLimitReached, got: %v", err)
	}
	if items := cart.Items(); items[0].MaxStock != 5 {
		t.Errorf("expected MaxStock snapshot 5, got %d", items[0].MaxStock)
	}
}

func TestAdjust_DecrementRemovesAtOne(t *testing.T) {
	cart, _, _, _ := newCartForTest(testProduct(1, 5))
	ctx := context.Background()

	cart.Add(ctx, 1)
	if err := cart.Adjust(ctx, 1, -1); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}

	if cart.Contains(1) {
		t.Error("expected line removed, not quantity 0")
	}
}

func TestAdjust_MissingLine(t *testing.T) {
	cart, _, _, _ := newCartForTest(testProduct(1, 5))

	err := cart.Adjust(context.Background(), 1, 1)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got: %v", err)
	}
}

func TestRemove_Idempotent(t *testing.T) {
	cart, _, _, _ := newCartForTest(testProduct(1, 5))
	ctx := context.Background()

	if err := cart.Remove(ctx, 1); err != nil {
		t.Errorf("removing an absent line should be a no-op, got: %v", err)
	}

	cart.Add(ctx, 1)
	cart.Remove(ctx, 1)
	if err := cart.Remove(ctx, 1); err != nil {
		t.Errorf("second remove should be a no-op, got: %v", err)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	cart, store, _, _ := newCartForTest(testProduct(1, 5))

	receipt, err := cart.Checkout(context.Background(), domain.ShippingDetails{FullName: "A"})
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got: %v", err)
	}
	if receipt != nil {
		t.Error("expected no receipt for empty cart")
	}
	if _, ok := store.raw(keyCart); ok {
		t.Error("expected storage untouched by failed checkout")
	}
}

func TestCheckout_Success(t *testing.T) {
	cart, store, _, _ := newCartForTest(testProduct(1, 5), testProduct(2, 5))
	ctx := context.Background()

	cart.Add(ctx, 1)
	cart.Add(ctx, 1)
	cart.Add(ctx, 2)

	shipping := domain.ShippingDetails{FullName: "Ayesha Khan", City: "Lahore"}
	receipt, err := cart.Checkout(ctx, shipping)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if !strings.HasPrefix(receipt.OrderID, "ORD-") {
		t.Errorf("expected ORD- order id, got %q", receipt.OrderID)
	}
	if receipt.Total != 3*1000 {
		t.Errorf("expected total 3000, got %d", receipt.Total)
	}
	if len(receipt.Items) != 2 {
		t.Errorf("expected 2 lines on receipt, got %d", len(receipt.Items))
	}
	if receipt.Shipping != shipping {
		t.Errorf("expected shipping details on receipt, got %+v", receipt.Shipping)
	}
	if len(cart.Items()) != 0 {
		t.Error("expected cart cleared after checkout")
	}
	if raw, _ := store.raw(keyCart); raw != "[]" {
		t.Errorf("expected empty cart persisted, got %q", raw)
	}
}

func TestCorruptCartDocument(t *testing.T) {
	store := newMemStore()
	store.put(keyCart, "{definitely not json")
	catalog := newStaticCatalog(testProduct(1, 5))
	notifier := &recordingNotifier{}

	cart := NewCartService(context.Background(), store, catalog, notifier)
	if len(cart.Items()) != 0 {
		t.Fatalf("expected empty cart from corrupt document, got %d lines", len(cart.Items()))
	}

	if err := cart.Add(context.Background(), 1); err != nil {
		t.Errorf("add after corrupt load failed: %v", err)
	}
	for _, n := range notifier.notifications {
		if n.kind == port.NotifyError {
			t.Errorf("corrupt document surfaced to the user: %q", n.message)
		}
	}
}

func TestCart_PersistenceRoundTrip(t *testing.T) {
	cart, store, catalog, _ := newCartForTest(testProduct(1, 5))
	ctx := context.Background()

	cart.Add(ctx, 1)
	cart.Add(ctx, 1)

	reloaded := NewCartService(ctx, store, catalog, &recordingNotifier{})
	items := reloaded.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Errorf("expected reloaded cart with one line quantity 2, got %+v", items)
	}
}

func TestAdd_NotifiesOutcome(t *testing.T) {
	cart, _, _, notifier := newCartForTest(testProduct(1, 1))
	ctx := context.Background()

	cart.Add(ctx, 1)
	if n, ok := notifier.last(); !ok || n.kind != port.NotifySuccess {
		t.Errorf("expected success notification, got %+v", n)
	}

	cart.Add(ctx, 1)
	if n, ok := notifier.last(); !ok || n.kind != port.NotifyError {
		t.Errorf("expected error notification, got %+v", n)
	}
}
