package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"

	"storefront/internal/domain"
	"storefront/internal/port"
	"storefront/internal/repository"
)

type catalogRepositorySuite struct {
	suite.Suite

	repo port.CatalogRepository
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(catalogRepositorySuite))
}

// before all tests in the suite
func (suite *catalogRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, pool, err := startPostgres(ctx)
	suite.NoError(err)
	suite.pool = pool

	suite.repo, err = repository.NewCatalog(suite.pool)
	suite.NoError(err)
}

// after all tests in the suite
func (suite *catalogRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *catalogRepositorySuite) TestInsert() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		product   domain.Product
		wantError string
	}{
		{
			name:    "insert product: ok",
			product: randomProduct(),
		},
		{
			name: "insert product with zero price: ok",
			product: domain.Product{
				Name:  gofakeit.ProductName(),
				Price: domain.Money{Amount: 0, Currency: currency.USD},
			},
		},
		{
			name:      "insert product with empty name: error",
			product:   domain.Product{Price: domain.Money{Amount: 100, Currency: currency.USD}},
			wantError: "product name is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			inserted, err := suite.repo.Insert(ctx, tt.product)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, inserted.ID)

			got, err := suite.repo.Get(ctx, inserted.ID)
			require.NoError(t, err)
			assertProduct(t, tt.product, got)
		})
	}
}

func (suite *catalogRepositorySuite) TestGet_NotFound() {
	t := suite.T()

	_, err := suite.repo.Get(t.Context(), 424242)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func (suite *catalogRepositorySuite) TestList_InsertionOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	var inserted []domain.Product
	for range 5 {
		p, err := suite.repo.Insert(ctx, randomProduct())
		require.NoError(t, err)
		inserted = append(inserted, p)
	}

	listed, err := suite.repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, len(inserted))

	// id order equals insertion order
	for i, p := range listed {
		assert.Equal(t, inserted[i].ID, p.ID)
		assert.Equal(t, inserted[i].Name, p.Name)
	}
}

func (suite *catalogRepositorySuite) TestCount() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	count, err := suite.repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = suite.repo.Insert(ctx, randomProduct())
	require.NoError(t, err)

	count, err = suite.repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func (suite *catalogRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE products CASCADE")
	suite.NoError(err)
}

func randomProduct() domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price: domain.Money{
			Amount:   int64(gofakeit.Number(100, 10_000)),
			Currency: currency.USD,
		},
		ImageURL: "/assets/images/" + gofakeit.Word() + ".webp",
	}
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "ID", "CreatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
}
