package mapper

import (
	"time"

	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
)

// DefaultQuantity applies when a cart or restock body omits its amount.
const DefaultQuantity = 1

// ProductCreate is the request body for adding a catalog product. Category is
// free text and may be empty.
type ProductCreate struct {
	Price        *float64 `json:"price" binding:"required"`
	Category     string   `json:"category"`
	Sale         float64  `json:"sale"`
	InitialStock int      `json:"initialStock"`
}

// SaleUpdate sets the discount fraction of a product.
type SaleUpdate struct {
	Sale *float64 `json:"sale" binding:"required"`
}

// StockUpdate adds units to the ledger. An omitted amount restocks one unit.
type StockUpdate struct {
	Amount *int `json:"amount"`
}

// BalanceTopUp credits a customer balance.
type BalanceTopUp struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// CartItem adds units of a product to a cart. An omitted quantity adds one unit.
type CartItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type Product struct {
	ID             string  `json:"id"`
	Price          float64 `json:"price"`
	Category       string  `json:"category"`
	Sale           float64 `json:"sale"`
	EffectivePrice float64 `json:"effectivePrice"`
	Stock          int     `json:"stock"`
}

type Line struct {
	ProductID string  `json:"productId"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	Sale      float64 `json:"sale"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

type Cart struct {
	CustomerID string  `json:"customerId"`
	Lines      []Line  `json:"lines"`
	Total      float64 `json:"total"`
}

type Order struct {
	ID       string    `json:"id"`
	PlacedAt time.Time `json:"placedAt"`
	Lines    []Line    `json:"lines"`
	Total    float64   `json:"total"`
}

type Customer struct {
	ID         string  `json:"id"`
	Balance    float64 `json:"balance"`
	Cart       Cart    `json:"cart"`
	OrderCount int     `json:"orderCount"`
}

// Receipt reports a checkout attempt. Order is omitted when declined.
type Receipt struct {
	CustomerID string  `json:"customerId"`
	Status     string  `json:"status"`
	Total      float64 `json:"total"`
	Balance    float64 `json:"balance"`
	Order      *Order  `json:"order,omitempty"`
}

// ToCreateProductInput converts a body already validated by gin binding.
func ToCreateProductInput(body ProductCreate) types.CreateProductInput {
	input := types.CreateProductInput{Category: body.Category, Sale: body.Sale, InitialStock: body.InitialStock}
	if body.Price != nil {
		input.Price = *body.Price
	}
	return input
}

// ToCartItemInput parses the product reference of a cart body.
func ToCartItemInput(customerID domain.CustomerID, body CartItem) (types.CartItemInput, error) {
	productID, err := domain.ParseProductID(body.ProductID)
	if err != nil {
		return types.CartItemInput{}, err
	}
	return types.CartItemInput{CustomerID: customerID, ProductID: productID, Quantity: QuantityOrDefault(body.Quantity)}, nil
}

// ToRestockInput applies DefaultQuantity to an omitted amount.
func ToRestockInput(id domain.ProductID, body StockUpdate) types.RestockInput {
	return types.RestockInput{ID: id, Amount: QuantityOrDefault(body.Amount)}
}

// QuantityOrDefault returns *q, or DefaultQuantity when q is nil.
func QuantityOrDefault(q *int) int {
	if q == nil {
		return DefaultQuantity
	}
	return *q
}

func FromProductProjection(p *types.ProductProjection) Product {
	if p == nil {
		return Product{}
	}
	return Product{
		ID:             p.ID.String(),
		Price:          p.Price,
		Category:       p.Category,
		Sale:           p.Sale,
		EffectivePrice: p.EffectivePrice,
		Stock:          p.Stock,
	}
}

func FromProductProjectionList(list []*types.ProductProjection) []Product {
	result := make([]Product, 0, len(list))
	for _, p := range list {
		result = append(result, FromProductProjection(p))
	}
	return result
}

func FromCartProjection(c *types.CartProjection) Cart {
	if c == nil {
		return Cart{Lines: []Line{}}
	}
	return Cart{CustomerID: c.CustomerID.String(), Lines: fromLines(c.Lines), Total: c.Total}
}

func FromOrderProjection(o *types.OrderProjection) Order {
	if o == nil {
		return Order{Lines: []Line{}}
	}
	return Order{ID: o.ID.String(), PlacedAt: o.PlacedAt, Lines: fromLines(o.Lines), Total: o.Total}
}

func FromOrderProjectionList(list []*types.OrderProjection) []Order {
	result := make([]Order, 0, len(list))
	for _, o := range list {
		result = append(result, FromOrderProjection(o))
	}
	return result
}

func FromCustomerProjection(c *types.CustomerProjection) Customer {
	if c == nil {
		return Customer{Cart: Cart{Lines: []Line{}}}
	}
	return Customer{
		ID:         c.ID.String(),
		Balance:    c.Balance,
		Cart:       FromCartProjection(&c.Cart),
		OrderCount: c.OrderCount,
	}
}

func FromCheckoutReceipt(r *types.CheckoutReceipt) Receipt {
	if r == nil {
		return Receipt{}
	}
	receipt := Receipt{
		CustomerID: r.CustomerID.String(),
		Status:     string(r.Status),
		Total:      r.Total,
		Balance:    r.Balance,
	}
	if r.Order != nil {
		order := FromOrderProjection(r.Order)
		receipt.Order = &order
	}
	return receipt
}

func fromLines(lines []types.LineProjection) []Line {
	result := make([]Line, 0, len(lines))
	for _, line := range lines {
		result = append(result, Line{
			ProductID: line.ProductID.String(),
			Category:  line.Category,
			Quantity:  line.Quantity,
			Sale:      line.Sale,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	return result
}
