package service

import (
	"context"

	"github.com/rl1809/luxestore/internal/core/domain"
)

// SyncCoordinator copies state between the two ownership domains: the
// live working ledgers and the durable per-user snapshots inside the
// registry. Nothing else is allowed to move data across that line.
type SyncCoordinator struct {
	users    *UserService
	cart     *CartService
	wishlist *WishlistService
}

// NewSyncCoordinator wires the coordinator into all three services.
func NewSyncCoordinator(users *UserService, cart *CartService, wishlist *WishlistService) *SyncCoordinator {
	c := &SyncCoordinator{users: users, cart: cart, wishlist: wishlist}
	users.AttachCoordinator(c)
	cart.AttachCoordinator(c)
	wishlist.AttachCoordinator(c)
	return c
}

// PullIntoWorkingState replaces the working ledgers with the user's
// saved snapshots after login. A record written before a ledger
// existed has a nil snapshot; those are skipped so the prior working
// state stays untouched.
func (c *SyncCoordinator) PullIntoWorkingState(ctx context.Context, user *domain.User) {
	if user == nil {
		return
	}
	if user.Cart != nil {
		c.cart.LoadFrom(ctx, user.Cart)
	}
	if user.Wishlist != nil {
		c.wishlist.LoadFrom(ctx, user.Wishlist)
	}
}

// PushIfAuthenticated mirrors the working ledgers into the logged-in
// user's record. Guests are a no-op; a guest cart is never attributed
// to a user.
func (c *SyncCoordinator) PushIfAuthenticated(ctx context.Context) {
	if !c.users.IsAuthenticated() {
		return
	}
	c.users.SaveWorkingState(ctx, c.cart.Items(), c.wishlist.Entries())
}

// ClearWorkingState wipes both ledgers. Called on logout, after the
// session is already gone, so the clears are not pushed anywhere.
func (c *SyncCoordinator) ClearWorkingState(ctx context.Context) {
	c.cart.Clear(ctx)
	c.wishlist.Clear(ctx)
}
