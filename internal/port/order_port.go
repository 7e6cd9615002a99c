package port

import (
	"context"

	"storefront/internal/domain"
)

type OrderRepository interface {
	// Create persists the order and its line snapshot in one transaction
	// and returns the order with its assigned ID and creation time.
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	Get(ctx context.Context, orderID int64) (domain.Order, error)
}
