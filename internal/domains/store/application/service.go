package application

import (
	"context"
	"errors"
	"strings"

	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
)

// Service orchestrates the storefront use cases over the catalog, the stock
// ledger and customer sessions.
type Service struct {
	products  ports.ProductRepository
	customers ports.CustomerRepository
	ledger    ports.StockLedger
	tax       domain.TaxFactor
}

// NewService wires the storefront service. tax is applied to every price it reports.
func NewService(products ports.ProductRepository, customers ports.CustomerRepository, ledger ports.StockLedger, tax domain.TaxFactor) *Service {
	return &Service{products: products, customers: customers, ledger: ledger, tax: tax}
}

// TaxFactor returns the factor the service prices with.
func (s *Service) TaxFactor() domain.TaxFactor {
	return s.tax
}

// CreateProduct adds a product to the catalog and stocks its opening quantity.
func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	if input.InitialStock < 0 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	product, err := domain.NewProduct(input.Price, strings.TrimSpace(input.Category), input.Sale)
	if err != nil {
		return nil, mapError(err)
	}
	// The product is only listed once its opening stock is on the ledger.
	if input.InitialStock > 0 {
		if err := s.ledger.Restock(ctx, product.ID(), input.InitialStock); err != nil {
			return nil, mapError(err)
		}
	}
	if err := s.products.Save(ctx, product); err != nil {
		if input.InitialStock > 0 {
			if rerr := s.ledger.Reserve(ctx, product.ID(), input.InitialStock); rerr != nil {
				err = errors.Join(err, rerr)
			}
		}
		return nil, mapError(err)
	}
	return s.project(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, input types.ProductIdentifier) (*types.ProductProjection, error) {
	product, err := s.products.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, product)
}

func (s *Service) ListProducts(ctx context.Context) ([]*types.ProductProjection, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	result := make([]*types.ProductProjection, 0, len(products))
	for _, product := range products {
		projection, err := s.project(ctx, product)
		if err != nil {
			return nil, err
		}
		result = append(result, projection)
	}
	return result, nil
}

func (s *Service) SetSale(ctx context.Context, input types.SetSaleInput) (*types.ProductProjection, error) {
	product, err := s.products.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := product.SetSale(input.Sale); err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, product)
}

func (s *Service) RemoveSale(ctx context.Context, input types.ProductIdentifier) (*types.ProductProjection, error) {
	product, err := s.products.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	product.RemoveSale()
	return s.project(ctx, product)
}

// Restock adds units of a catalog product to the ledger.
func (s *Service) Restock(ctx context.Context, input types.RestockInput) (*types.ProductProjection, error) {
	product, err := s.products.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.ledger.Restock(ctx, product.ID(), input.Amount); err != nil {
		return nil, mapError(err)
	}
	return s.project(ctx, product)
}

func (s *Service) RegisterCustomer(ctx context.Context) (*types.CustomerProjection, error) {
	customer := domain.NewCustomer(s.ledger)
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, mapError(err)
	}
	return types.NewCustomerProjection(customer, s.tax), nil
}

func (s *Service) GetCustomer(ctx context.Context, input types.CustomerIdentifier) (*types.CustomerProjection, error) {
	customer, err := s.customers.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return types.NewCustomerProjection(customer, s.tax), nil
}

func (s *Service) TopUp(ctx context.Context, input types.TopUpInput) (*types.CustomerProjection, error) {
	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := customer.TopUp(input.Amount); err != nil {
		return nil, mapError(err)
	}
	return types.NewCustomerProjection(customer, s.tax), nil
}

func (s *Service) GetCart(ctx context.Context, input types.CustomerIdentifier) (*types.CartProjection, error) {
	customer, err := s.customers.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return types.NewCartProjection(customer.ID(), customer.CartLines(), s.tax), nil
}

// AddToCart reserves stock into the customer's cart. Insufficient stock
// surfaces as domain.ErrInsufficientStock with the cart unchanged.
func (s *Service) AddToCart(ctx context.Context, input types.CartItemInput) (*types.CartProjection, error) {
	customer, product, err := s.customerAndProduct(ctx, input.CustomerID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if err := customer.AddToCart(ctx, product, input.Quantity); err != nil {
		return nil, mapError(err)
	}
	return types.NewCartProjection(customer.ID(), customer.CartLines(), s.tax), nil
}

// RemoveFromCart returns Quantity held units to the ledger; removing at least
// the held amount drops the entry.
func (s *Service) RemoveFromCart(ctx context.Context, input types.CartItemInput) (*types.CartProjection, error) {
	customer, product, err := s.customerAndProduct(ctx, input.CustomerID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if err := customer.RemoveFromCart(ctx, product, input.Quantity); err != nil {
		return nil, mapError(err)
	}
	return types.NewCartProjection(customer.ID(), customer.CartLines(), s.tax), nil
}

func (s *Service) RemoveAllFromCart(ctx context.Context, input types.CartProductInput) (*types.CartProjection, error) {
	customer, product, err := s.customerAndProduct(ctx, input.CustomerID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if err := customer.RemoveAllFromCart(ctx, product); err != nil {
		return nil, mapError(err)
	}
	return types.NewCartProjection(customer.ID(), customer.CartLines(), s.tax), nil
}

// Checkout buys the customer's cart. A declined checkout returns a receipt
// with domain.CheckoutDeclined and a nil error.
func (s *Service) Checkout(ctx context.Context, input types.CustomerIdentifier) (*types.CheckoutReceipt, error) {
	customer, err := s.customers.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	result := customer.Checkout(s.tax)
	return types.NewCheckoutReceipt(customer.ID(), result, s.tax), nil
}

func (s *Service) ListOrders(ctx context.Context, input types.CustomerIdentifier) ([]*types.OrderProjection, error) {
	customer, err := s.customers.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	orders := customer.Orders()
	result := make([]*types.OrderProjection, 0, len(orders))
	for _, order := range orders {
		result = append(result, types.NewOrderProjection(order, s.tax))
	}
	return result, nil
}

func (s *Service) customerAndProduct(ctx context.Context, customerID domain.CustomerID, productID domain.ProductID) (*domain.Customer, *domain.Product, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return customer, product, nil
}

func (s *Service) project(ctx context.Context, product *domain.Product) (*types.ProductProjection, error) {
	stock, err := s.ledger.Quantity(ctx, product.ID())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, mapError(err)
	}
	return types.NewProductProjection(product, stock, s.tax), nil
}

var _ ports.Service = (*Service)(nil)
