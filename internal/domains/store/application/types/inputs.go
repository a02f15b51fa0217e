package types

import "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"

// CreateProductInput describes a new catalog entry and its opening stock.
type CreateProductInput struct {
	Price        float64
	Category     string
	Sale         float64
	InitialStock int
}

// ProductIdentifier addresses a single product.
type ProductIdentifier struct {
	ID domain.ProductID
}

type SetSaleInput struct {
	ID   domain.ProductID
	Sale float64
}

type RestockInput struct {
	ID     domain.ProductID
	Amount int
}

// CustomerIdentifier addresses a single customer session.
type CustomerIdentifier struct {
	ID domain.CustomerID
}

type TopUpInput struct {
	CustomerID domain.CustomerID
	Amount     float64
}

// CartItemInput adds or removes Quantity units of a product.
type CartItemInput struct {
	CustomerID domain.CustomerID
	ProductID  domain.ProductID
	Quantity   int
}

// CartProductInput addresses a whole cart entry.
type CartProductInput struct {
	CustomerID domain.CustomerID
	ProductID  domain.ProductID
}
