package ports

import (
	"context"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

// OrderRepository defines persistence operations on the order ledger.
// Orders are append-only; there is no update or delete.
type OrderRepository interface {
	InsertMany(ctx context.Context, orders []*domain.Order) error
	// FindByBuyer returns the buyer's orders, newest first.
	FindByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error)
}
