package port

import (
	"context"

	"github.com/rl1809/luxestore/internal/core/domain"
)

// Catalog is the read-only product source supplied externally.
type Catalog interface {
	// GetProduct returns the product with the given id, or nil when no
	// such product exists.
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}
