package ports

import (
	"context"

	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
)

// Service defines the storefront use cases exposed to adapters (inbound/driving port).
type Service interface {
	CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error)
	GetProduct(ctx context.Context, input types.ProductIdentifier) (*types.ProductProjection, error)
	ListProducts(ctx context.Context) ([]*types.ProductProjection, error)
	SetSale(ctx context.Context, input types.SetSaleInput) (*types.ProductProjection, error)
	RemoveSale(ctx context.Context, input types.ProductIdentifier) (*types.ProductProjection, error)
	Restock(ctx context.Context, input types.RestockInput) (*types.ProductProjection, error)

	RegisterCustomer(ctx context.Context) (*types.CustomerProjection, error)
	GetCustomer(ctx context.Context, input types.CustomerIdentifier) (*types.CustomerProjection, error)
	TopUp(ctx context.Context, input types.TopUpInput) (*types.CustomerProjection, error)

	GetCart(ctx context.Context, input types.CustomerIdentifier) (*types.CartProjection, error)
	AddToCart(ctx context.Context, input types.CartItemInput) (*types.CartProjection, error)
	RemoveFromCart(ctx context.Context, input types.CartItemInput) (*types.CartProjection, error)
	RemoveAllFromCart(ctx context.Context, input types.CartProductInput) (*types.CartProjection, error)

	// Checkout returns a receipt for both outcomes; a declined checkout is not an error.
	Checkout(ctx context.Context, input types.CustomerIdentifier) (*types.CheckoutReceipt, error)
	ListOrders(ctx context.Context, input types.CustomerIdentifier) ([]*types.OrderProjection, error)
}
