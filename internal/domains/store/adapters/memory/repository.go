package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository is an in-memory catalog. It hands out the stored handles
// themselves so sale changes are visible to every cart holding the product.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[domain.ProductID]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: map[domain.ProductID]*domain.Product{}}
}

func (r *ProductRepository) Save(_ context.Context, product *domain.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID()] = product
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not in the catalog", domain.ErrNotFound, id)
	}
	return product, nil
}

// List returns the catalog ordered by category, then id.
func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		list = append(list, product)
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if list[i].Category() != list[j].Category() {
			return list[i].Category() < list[j].Category()
		}
		return list[i].ID().String() < list[j].ID().String()
	})
	return list, nil
}
