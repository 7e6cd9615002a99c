// Package checkout materializes a session cart into a persisted order.
package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/port"
	"storefront/internal/session"
)

type Service struct {
	cart     *cart.Service
	orders   port.OrderRepository
	sessions session.Store
	logger   *slog.Logger
}

func NewService(cartService *cart.Service, orders port.OrderRepository, sessions session.Store, logger *slog.Logger) *Service {
	return &Service{
		cart:     cartService,
		orders:   orders,
		sessions: sessions,
		logger:   logger,
	}
}

// Checkout prices the cart at current catalog prices, persists the order
// with an immutable line snapshot, then clears the cart and sets the success
// flash. An empty cart fails with domain.ErrEmptyCart and writes nothing.
//
// The order commit comes first: a persistence failure leaves the cart
// untouched, while a session failure after the commit only loses the cart
// cleanup, never the order. That cleanup failure is logged and swallowed so
// the visitor still sees a committed checkout as a success.
func (s *Service) Checkout(ctx context.Context, token string) (domain.Order, error) {
	view, err := s.cart.View(ctx, token)
	if err != nil {
		return domain.Order{}, fmt.Errorf("cart.View: %w", err)
	}

	if view.IsEmpty() {
		return domain.Order{}, domain.ErrEmptyCart
	}

	order, err := s.orders.Create(ctx, domain.Order{
		Total: view.Total,
		Lines: view.Snapshot(),
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.Create: %w", err)
	}

	total := order.Total
	err = s.sessions.Update(ctx, token, func(rec *session.Record) error {
		rec.Cart.Clear()
		rec.Flash = domain.Flash{
			Success:    "Order placed successfully!",
			OrderLines: order.Lines,
			OrderTotal: &total,
		}
		return nil
	})
	if err != nil {
		// The order is durably committed; only the cart cleanup is lost.
		s.logger.Error("clearing cart after checkout failed",
			"order_id", order.ID, "error", err)
	}

	return order, nil
}
