// Package seed inserts demo products at startup so the storefront works
// without manual setup. It runs once, before traffic is accepted, and only
// when the catalog is empty.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/currency"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type demoProduct struct {
	name        string
	description string
	amount      int64
	imageURL    string
}

var demoProducts = []demoProduct{
	{"Bluetooth Earbuds", "High-quality sound with noise cancellation.", 1999, "/assets/images/earbuds.webp"},
	{"Leather Wallet", "Genuine leather wallet with card slots.", 799, "/assets/images/wallet.jpg"},
	{"Sports Shoes", "Breathable running shoes for daily wear.", 2499, "/assets/images/shoes.webp"},
	{"Wireless Keyboard", "Compact keyboard with long battery life.", 1299, "/assets/images/keyboard.webp"},
	{"Casual Backpack", "Stylish and lightweight backpack.", 999, "/assets/images/backpack.webp"},
	{"Desk Lamp", "LED desk lamp with adjustable brightness.", 599, "/assets/images/lamp.jpg"},
	{"Water Bottle", "Insulated bottle keeps liquids hot/cold.", 399, "/assets/images/bottle.webp"},
	{"Travel Mug", "Leak-proof stainless steel mug.", 449, "/assets/images/mug.webp"},
	{"Notebook", "A5 notebook with dotted pages.", 149, "/assets/images/notebook.webp"},
}

// Run is idempotent: it does nothing when products already exist.
func Run(ctx context.Context, repo port.CatalogRepository, cur currency.Unit, logger *slog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("repo.Count: %w", err)
	}

	if count > 0 {
		logger.Info("products already exist, skipping seeding", "count", count)
		return nil
	}

	logger.Info("no products found, seeding now")

	for _, p := range demoProducts {
		_, err := repo.Insert(ctx, domain.Product{
			Name:        p.name,
			Description: p.description,
			Price:       domain.Money{Amount: p.amount, Currency: cur},
			ImageURL:    p.imageURL,
		})
		if err != nil {
			return fmt.Errorf("repo.Insert[%s]: %w", p.name, err)
		}
	}

	logger.Info("seeding completed", "count", len(demoProducts))
	return nil
}
