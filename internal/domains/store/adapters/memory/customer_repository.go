package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
)

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository keeps customer sessions for the life of the process.
type CustomerRepository struct {
	customers sync.Map
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) Save(_ context.Context, customer *domain.Customer) error {
	if customer == nil {
		return errors.New("customer is nil")
	}
	r.customers.Store(customer.ID(), customer)
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id domain.CustomerID) (*domain.Customer, error) {
	value, ok := r.customers.Load(id)
	if !ok {
		return nil, ports.ErrCustomerNotFound
	}
	return value.(*domain.Customer), nil
}
