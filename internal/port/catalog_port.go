package port

import (
	"context"

	"storefront/internal/domain"
)

// CatalogReader is the read surface the cart and checkout core consume.
type CatalogReader interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, productID int64) (domain.Product, error)
}

// CatalogRepository adds the write surface used only by the seeding
// bootstrap; nothing on the request path mutates the catalog.
type CatalogRepository interface {
	CatalogReader

	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, product domain.Product) (domain.Product, error)
}
