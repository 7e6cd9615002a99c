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

type catalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) (port.CatalogRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &catalogRepository{pool: pool}, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, price_amount, price_currency, image_url, created_at
		FROM products
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) Get(ctx context.Context, productID int64) (domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, price_amount, price_currency, image_url, created_at
		FROM products
		WHERE id = $1`, productID)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return count, nil
}

func (r *catalogRepository) Insert(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" {
		return domain.Product{}, fmt.Errorf("product name is empty")
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price_amount, price_currency, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		product.Name,
		product.Description,
		product.Price.Amount,
		product.Price.Currency.String(),
		product.ImageURL,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("row.Scan: %w", err)
	}

	return product, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		product      domain.Product
		currencyCode string
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price.Amount,
		&currencyCode,
		&product.ImageURL,
		&product.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}
	product.Price.Currency = parsedCurrency

	return product, nil
}
