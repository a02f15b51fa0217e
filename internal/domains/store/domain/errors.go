package domain

import "errors"

var (
	// ErrNotFound signals a product handle absent from the stock ledger or the cart.
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock signals a reservation larger than the quantity on hand.
	ErrInsufficientStock = errors.New("not enough in stock")
	// ErrInvalidQuantity signals a non-positive amount where a positive one is required.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("price must be a non-negative number")
	ErrInvalidSale     = errors.New("sale must be between 0 and 1")
	ErrInvalidTax      = errors.New("tax percentage must be a non-negative number")
)
