package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/currency"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type orderRepository struct {
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{pool: pool}, nil
}

// Create writes the order row and its line snapshot in a single
// transaction: either the whole order becomes visible or none of it does.
func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Lines) == 0 {
		return domain.Order{}, fmt.Errorf("order has no lines")
	}

	return withTx(ctx, r.pool, func(tx pgx.Tx) (domain.Order, error) {
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (total_amount, total_currency)
			VALUES ($1, $2)
			RETURNING id, created_at`,
			order.Total.Amount,
			order.Total.Currency.String(),
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for i, line := range order.Lines {
			batch.Queue(`
				INSERT INTO order_items (order_id, position, product_name, unit_price_amount, unit_price_currency, quantity)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				order.ID,
				i,
				line.ProductName,
				line.UnitPrice.Amount,
				line.UnitPrice.Currency.String(),
				line.Quantity,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return domain.Order{}, fmt.Errorf("insert order items: %w", err)
		}

		return order, nil
	})
}

func (r *orderRepository) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	var (
		order        domain.Order
		currencyCode string
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, total_amount, total_currency, created_at
		FROM orders
		WHERE id = $1`, orderID).
		Scan(&order.ID, &order.Total.Amount, &currencyCode, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}
	order.Total.Currency = parsedCurrency

	order.Lines, err = r.orderLines(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orderLines: %w", err)
	}

	return order, nil
}

func (r *orderRepository) orderLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_name, unit_price_amount, unit_price_currency, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var (
			line         domain.OrderLine
			currencyCode string
		)
		if err := rows.Scan(&line.ProductName, &line.UnitPrice.Amount, &currencyCode, &line.Quantity); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		parsedCurrency, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}
		line.UnitPrice.Currency = parsedCurrency

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}
