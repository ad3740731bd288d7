package domain

import "time"

// User is a registry record. Cart and Wishlist hold the durable
// per-user snapshot as of the last save; the live working copies are
// owned by the ledgers. Passwords are stored in plaintext, a deliberate
// simplification of the demo this system reimplements.
type User struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	CreatedAt time.Time       `json:"createdAt"`
	Cart      []CartLine      `json:"cart"`
	Wishlist  []WishlistEntry `json:"wishlist"`
}

// Session is the persisted session token: the current user's id plus
// cached display fields.
type Session struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
