package service

import "errors"

// errorMessage maps a service error to the transient user-facing
// notification text. Unknown errors get a generic message; the wrapped
// detail still travels on the returned error.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return "Product not found."
	case errors.Is(err, ErrStockLimitReached):
		return "Cannot add more items. Stock limit reached."
	case errors.Is(err, ErrOutOfStock):
		return "Sorry, this item is out of stock."
	case errors.Is(err, ErrItemNotFound):
		return "Product not found in cart."
	case errors.Is(err, ErrEmptyCart):
		return "Your cart is empty!"
	case errors.Is(err, ErrEmailTaken):
		return "An account with this email already exists."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrValidationFailed):
		return "Please fill in all fields."
	default:
		return "Something went wrong. Please try again."
	}
}
