package domain

import "time"

// WishlistEntry is a full product snapshot plus the time it was saved.
type WishlistEntry struct {
	ProductID   int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       int       `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Stock       int       `json:"stock"`
	AddedAt     time.Time `json:"addedAt"`
}
