package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubCatalog struct {
	products map[int64]domain.Product
}

func (s *stubCatalog) List(context.Context) ([]domain.Product, error) {
	var products []domain.Product
	for _, p := range s.products {
		products = append(products, p)
	}
	return products, nil
}

func (s *stubCatalog) Get(_ context.Context, productID int64) (domain.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func usd(amount int64) domain.Money {
	return domain.Money{Amount: amount, Currency: currency.USD}
}

func newFixture() (*cart.Service, *stubCatalog, session.Store) {
	catalog := &stubCatalog{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Bluetooth Earbuds", Price: usd(1999)},
		2: {ID: 2, Name: "Leather Wallet", Price: usd(799)},
		3: {ID: 3, Name: "Notebook", Price: usd(149)},
	}}
	store := session.NewMemoryStore()

	return cart.NewService(store, catalog), catalog, store
}

func TestAddItem(t *testing.T) {
	tests := []struct {
		name      string
		adds      [][2]int64 // productID, quantity
		wantLines []domain.CartLine
		wantError error
	}{
		{
			name:      "add new product",
			adds:      [][2]int64{{1, 1}},
			wantLines: []domain.CartLine{{ProductID: 1, Quantity: 1}},
		},
		{
			name:      "repeated adds increment a single line",
			adds:      [][2]int64{{1, 1}, {1, 1}},
			wantLines: []domain.CartLine{{ProductID: 1, Quantity: 2}},
		},
		{
			name:      "quantities sum across adds",
			adds:      [][2]int64{{2, 2}, {2, 3}},
			wantLines: []domain.CartLine{{ProductID: 2, Quantity: 5}},
		},
		{
			name:      "zero quantity defaults to one",
			adds:      [][2]int64{{1, 0}},
			wantLines: []domain.CartLine{{ProductID: 1, Quantity: 1}},
		},
		{
			name:      "unknown product",
			adds:      [][2]int64{{42, 1}},
			wantError: domain.ErrProductNotFound,
		},
		{
			name:      "lines keep insertion order",
			adds:      [][2]int64{{2, 1}, {1, 1}, {2, 1}},
			wantLines: []domain.CartLine{{ProductID: 2, Quantity: 2}, {ProductID: 1, Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			svc, _, store := newFixture()

			var lastErr error
			for _, add := range tt.adds {
				lastErr = svc.AddItem(ctx, "tok", add[0], int(add[1]))
			}

			if tt.wantError != nil {
				require.ErrorIs(t, lastErr, tt.wantError)
				return
			}
			require.NoError(t, lastErr)

			rec, err := store.Get(ctx, "tok")
			require.NoError(t, err)
			assert.Equal(t, tt.wantLines, rec.Cart.Lines)
		})
	}
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("sets quantity exactly", func(t *testing.T) {
		svc, _, store := newFixture()
		require.NoError(t, svc.AddItem(ctx, "tok", 1, 3))

		require.NoError(t, svc.UpdateQuantity(ctx, "tok", 1, 7))

		rec, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, []domain.CartLine{{ProductID: 1, Quantity: 7}}, rec.Cart.Lines)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		svc, _, store := newFixture()
		require.NoError(t, svc.AddItem(ctx, "tok", 1, 3))

		require.NoError(t, svc.UpdateQuantity(ctx, "tok", 1, 0))

		rec, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		assert.Empty(t, rec.Cart.Lines)
	})

	t.Run("missing line fails", func(t *testing.T) {
		svc, _, _ := newFixture()

		err := svc.UpdateQuantity(ctx, "tok", 1, 2)
		require.ErrorIs(t, err, domain.ErrCartLineNotFound)
	})
}

func TestRemoveItem_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newFixture()

	require.NoError(t, svc.AddItem(ctx, "tok", 1, 1))
	require.NoError(t, svc.AddItem(ctx, "tok", 2, 1))

	// removing an absent product is a no-op
	require.NoError(t, svc.RemoveItem(ctx, "tok", 42))

	require.NoError(t, svc.RemoveItem(ctx, "tok", 1))
	rec, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	afterFirst := rec.Cart.Lines

	// removing twice leaves the same state as removing once
	require.NoError(t, svc.RemoveItem(ctx, "tok", 1))
	rec, err = store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, afterFirst, rec.Cart.Lines)

	assert.Equal(t, []domain.CartLine{{ProductID: 2, Quantity: 1}}, rec.Cart.Lines)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newFixture()

	require.NoError(t, svc.AddItem(ctx, "tok", 1, 1))
	require.NoError(t, svc.Clear(ctx, "tok"))

	rec, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Empty(t, rec.Cart.Lines)
}

func TestView(t *testing.T) {
	ctx := context.Background()

	t.Run("totals from current catalog prices", func(t *testing.T) {
		svc, _, _ := newFixture()
		require.NoError(t, svc.AddItem(ctx, "tok", 1, 1))
		require.NoError(t, svc.AddItem(ctx, "tok", 2, 2))

		view, err := svc.View(ctx, "tok")
		require.NoError(t, err)

		require.Len(t, view.Lines, 2)
		assert.Equal(t, usd(1999), view.Lines[0].LineTotal)
		assert.Equal(t, usd(1598), view.Lines[1].LineTotal)
		assert.Equal(t, usd(3597), view.Total)
	})

	t.Run("price change moves the displayed total", func(t *testing.T) {
		svc, catalog, _ := newFixture()
		require.NoError(t, svc.AddItem(ctx, "tok", 3, 2))

		view, err := svc.View(ctx, "tok")
		require.NoError(t, err)
		require.Equal(t, usd(298), view.Total)

		p := catalog.products[3]
		p.Price = usd(200)
		catalog.products[3] = p

		view, err = svc.View(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, usd(400), view.Total)
	})

	t.Run("dangling lines are skipped", func(t *testing.T) {
		svc, catalog, _ := newFixture()
		require.NoError(t, svc.AddItem(ctx, "tok", 1, 1))
		require.NoError(t, svc.AddItem(ctx, "tok", 3, 1))

		delete(catalog.products, 3)

		view, err := svc.View(ctx, "tok")
		require.NoError(t, err)

		require.Len(t, view.Lines, 1)
		assert.EqualValues(t, 1, view.Lines[0].Product.ID)
		assert.Equal(t, usd(1999), view.Total)
	})

	t.Run("empty session yields empty view", func(t *testing.T) {
		svc, _, _ := newFixture()

		view, err := svc.View(ctx, "unknown")
		require.NoError(t, err)
		assert.True(t, view.IsEmpty())
	})
}
