package types

import (
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
)

// ProductProjection is a read view of a product priced with the configured tax.
type ProductProjection struct {
	ID             domain.ProductID
	Price          float64
	Category       string
	Sale           float64
	EffectivePrice float64
	Stock          int
}

// NewProductProjection prices a product and attaches its stock level.
func NewProductProjection(product *domain.Product, stock int, tax domain.TaxFactor) *ProductProjection {
	if product == nil {
		return nil
	}
	return &ProductProjection{
		ID:             product.ID(),
		Price:          product.Price(),
		Category:       product.Category(),
		Sale:           product.Sale(),
		EffectivePrice: product.EffectivePrice(tax),
		Stock:          stock,
	}
}

// LineProjection is one priced cart or order entry.
type LineProjection struct {
	ProductID domain.ProductID
	Category  string
	Quantity  int
	Sale      float64
	UnitPrice float64
	Subtotal  float64
}

// CartProjection shows what a customer currently holds.
type CartProjection struct {
	CustomerID domain.CustomerID
	Lines      []LineProjection
	Total      float64
}

// NewCartProjection prices held lines.
func NewCartProjection(customerID domain.CustomerID, lines []domain.Line, tax domain.TaxFactor) *CartProjection {
	priced, total := priceLines(lines, tax)
	return &CartProjection{CustomerID: customerID, Lines: priced, Total: total}
}

// OrderProjection is a completed order.
type OrderProjection struct {
	ID       domain.OrderID
	PlacedAt time.Time
	Lines    []LineProjection
	Total    float64
}

// NewOrderProjection prices an order snapshot.
func NewOrderProjection(order *domain.Order, tax domain.TaxFactor) *OrderProjection {
	if order == nil {
		return nil
	}
	priced, _ := priceLines(order.Lines(), tax)
	return &OrderProjection{ID: order.ID(), PlacedAt: order.PlacedAt(), Lines: priced, Total: order.Total(tax)}
}

// CustomerProjection summarizes a customer session.
type CustomerProjection struct {
	ID         domain.CustomerID
	Balance    float64
	Cart       CartProjection
	OrderCount int
}

// NewCustomerProjection snapshots a customer.
func NewCustomerProjection(customer *domain.Customer, tax domain.TaxFactor) *CustomerProjection {
	if customer == nil {
		return nil
	}
	return &CustomerProjection{
		ID:         customer.ID(),
		Balance:    customer.Balance(),
		Cart:       *NewCartProjection(customer.ID(), customer.CartLines(), tax),
		OrderCount: len(customer.Orders()),
	}
}

// CheckoutReceipt reports a checkout attempt. Order is nil when declined.
type CheckoutReceipt struct {
	CustomerID domain.CustomerID
	Status     domain.CheckoutStatus
	Total      float64
	Balance    float64
	Order      *OrderProjection
}

// NewCheckoutReceipt converts a domain checkout result.
func NewCheckoutReceipt(customerID domain.CustomerID, result domain.CheckoutResult, tax domain.TaxFactor) *CheckoutReceipt {
	return &CheckoutReceipt{
		CustomerID: customerID,
		Status:     result.Status,
		Total:      result.Total,
		Balance:    result.Balance,
		Order:      NewOrderProjection(result.Order, tax),
	}
}

// Declined reports whether the balance did not cover the total.
func (r *CheckoutReceipt) Declined() bool {
	return r != nil && r.Status == domain.CheckoutDeclined
}

func priceLines(lines []domain.Line, tax domain.TaxFactor) ([]LineProjection, float64) {
	result := make([]LineProjection, 0, len(lines))
	var total float64
	for _, line := range lines {
		unit := line.UnitPrice(tax)
		subtotal := line.Subtotal(tax)
		total += subtotal
		result = append(result, LineProjection{
			ProductID: line.Product.ID(),
			Category:  line.Product.Category(),
			Quantity:  line.Quantity,
			Sale:      line.Sale(),
			UnitPrice: unit,
			Subtotal:  subtotal,
		})
	}
	return result, total
}
