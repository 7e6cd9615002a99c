// Package catalog is the read surface over the product repository. The
// catalog never changes after the seeding bootstrap, so lookups are safe to
// collapse; singleflight keeps a burst of identical reads down to one query.
package catalog

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type Service struct {
	repo port.CatalogReader
	sfg  singleflight.Group // Prevents duplicate concurrent queries
}

func NewService(repo port.CatalogReader) *Service {
	return &Service{repo: repo}
}

// List returns all products in id order.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("list", func() (interface{}, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

// Get returns the product or domain.ErrProductNotFound.
func (s *Service) Get(ctx context.Context, productID int64) (domain.Product, error) {
	v, err, _ := s.sfg.Do(strconv.FormatInt(productID, 10), func() (interface{}, error) {
		return s.repo.Get(ctx, productID)
	})
	if err != nil {
		return domain.Product{}, err
	}

	return v.(domain.Product), nil
}
