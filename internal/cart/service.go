// Package cart implements the session cart: per-visitor lines mutated
// through the session store, priced against the live catalog on every read.
package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/port"
	"storefront/internal/session"
)

type Service struct {
	sessions session.Store
	catalog  port.CatalogReader
}

func NewService(sessions session.Store, catalog port.CatalogReader) *Service {
	return &Service{
		sessions: sessions,
		catalog:  catalog,
	}
}

// AddItem upserts a cart line, incrementing the quantity when the product is
// already in the cart. Unknown products fail with domain.ErrProductNotFound.
func (s *Service) AddItem(ctx context.Context, token string, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.catalog.Get(ctx, productID); err != nil {
		return fmt.Errorf("catalog.Get: %w", err)
	}

	err := s.sessions.Update(ctx, token, func(rec *session.Record) error {
		rec.Cart.Upsert(productID, quantity)
		return nil
	})
	if err != nil {
		return fmt.Errorf("sessions.Update: %w", err)
	}

	return nil
}

// UpdateQuantity sets a line's quantity exactly; quantity <= 0 removes the
// line. A line that is not in the cart fails with domain.ErrCartLineNotFound.
func (s *Service) UpdateQuantity(ctx context.Context, token string, productID int64, quantity int) error {
	err := s.sessions.Update(ctx, token, func(rec *session.Record) error {
		if !rec.Cart.SetQuantity(productID, quantity) {
			return domain.ErrCartLineNotFound
		}
		return nil
	})
	if errors.Is(err, domain.ErrCartLineNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("sessions.Update: %w", err)
	}

	return nil
}

// RemoveItem deletes the line. Removing an absent product is a no-op.
func (s *Service) RemoveItem(ctx context.Context, token string, productID int64) error {
	err := s.sessions.Update(ctx, token, func(rec *session.Record) error {
		rec.Cart.Remove(productID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("sessions.Update: %w", err)
	}

	return nil
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context, token string) error {
	err := s.sessions.Update(ctx, token, func(rec *session.Record) error {
		rec.Cart.Clear()
		return nil
	})
	if err != nil {
		return fmt.Errorf("sessions.Update: %w", err)
	}

	return nil
}

// View joins the cart against the live catalog. Lines whose product no
// longer exists are silently skipped; the grand total is computed from
// current catalog prices. The session store is re-read on every call.
func (s *Service) View(ctx context.Context, token string) (domain.CartView, error) {
	rec, err := s.sessions.Get(ctx, token)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("sessions.Get: %w", err)
	}

	var view domain.CartView
	for _, line := range rec.Cart.Lines {
		product, err := s.catalog.Get(ctx, line.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return domain.CartView{}, fmt.Errorf("catalog.Get: %w", err)
		}

		lineTotal := product.Price.Mul(line.Quantity)

		if view.Total.Amount == 0 && len(view.Lines) == 0 {
			view.Total = domain.Money{Currency: product.Price.Currency}
		}
		view.Total, err = view.Total.Add(lineTotal)
		if err != nil {
			return domain.CartView{}, fmt.Errorf("total.Add: %w", err)
		}

		view.Lines = append(view.Lines, domain.CartViewLine{
			Product:   product,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
	}

	return view, nil
}
