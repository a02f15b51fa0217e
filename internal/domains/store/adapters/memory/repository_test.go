package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
)

func TestProductRepository_ReturnsLiveHandles(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	product, err := domain.NewProduct(10, "books", 0)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	loaded, err := repo.GetByID(ctx, product.ID())
	require.NoError(t, err)
	require.Same(t, product, loaded)

	require.NoError(t, loaded.SetSale(0.5))
	require.Equal(t, 0.5, product.Sale())
}

func TestProductRepository_ListOrdersByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	toys, err := domain.NewProduct(5, "toys", 0)
	require.NoError(t, err)
	books, err := domain.NewProduct(7, "books", 0)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, toys))
	require.NoError(t, repo.Save(ctx, books))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "books", list[0].Category())
	require.Same(t, toys, list[1])

	_, err = repo.GetByID(ctx, domain.NewProductID())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerRepository_SaveGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()
	customer := domain.NewCustomer(domain.NewStore())
	require.NoError(t, repo.Save(ctx, customer))

	loaded, err := repo.GetByID(ctx, customer.ID())
	require.NoError(t, err)
	require.Same(t, customer, loaded)

	_, err = repo.GetByID(ctx, domain.NewCustomerID())
	require.ErrorIs(t, err, ports.ErrCustomerNotFound)
}
