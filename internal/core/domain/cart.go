package domain

import "time"

// CartLine is one cart entry. Name, price and image are denormalized
// snapshots taken when the line was created; MaxStock is the stock
// level at add time and is display-only, stock gating always re-reads
// the catalog.
type CartLine struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	MaxStock  int    `json:"maxStock"`
}

type ShippingDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
}

// OrderReceipt is the snapshot produced by checkout. It is returned to
// the caller and never persisted; checkout does not reach any payment
// backend.
type OrderReceipt struct {
	OrderID   string          `json:"orderId"`
	Items     []CartLine      `json:"items"`
	Total     int             `json:"total"`
	Shipping  ShippingDetails `json:"shipping"`
	OrderDate time.Time       `json:"orderDate"`
}
