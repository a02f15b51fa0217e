package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
)

var ErrCustomerNotFound = errors.New("customer not found")

// ProductRepository keeps the catalog. Returned products are live handles:
// the same id always yields the same *domain.Product.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

// CustomerRepository keeps customer sessions.
type CustomerRepository interface {
	Save(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id domain.CustomerID) (*domain.Customer, error)
}

// StockLedger is the authoritative stock count carts reserve from.
type StockLedger interface {
	domain.StockKeeper
	Quantity(ctx context.Context, id domain.ProductID) (int, error)
	Levels(ctx context.Context) ([]domain.StockLevel, error)
}

var _ StockLedger = (*domain.Store)(nil)
