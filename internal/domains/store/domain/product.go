package domain

import (
	"math"
	"sync"

	"github.com/google/uuid"
)

// ProductID is the stock-keeping identity of a product. Two products with
// identical fields are still distinct units when their ids differ.
type ProductID uuid.UUID

// NewProductID allocates a fresh random identity.
func NewProductID() ProductID {
	return ProductID(uuid.New())
}

// ParseProductID parses the canonical UUID form.
func ParseProductID(raw string) (ProductID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return ProductID{}, err
	}
	return ProductID(id), nil
}

func (id ProductID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the id was never assigned.
func (id ProductID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// Product is a store item. Price and category are fixed at creation; the sale
// fraction may change at any time and is safe for concurrent use.
type Product struct {
	id       ProductID
	price    float64
	category string

	mu   sync.RWMutex
	sale float64
}

// NewProduct validates and constructs a product with a fresh identity.
func NewProduct(price float64, category string, sale float64) (*Product, error) {
	return RestoreProduct(NewProductID(), price, category, sale)
}

// RestoreProduct rebuilds a product with a known identity.
func RestoreProduct(id ProductID, price float64, category string, sale float64) (*Product, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, ErrInvalidPrice
	}
	if err := validateSale(sale); err != nil {
		return nil, err
	}
	if id.IsZero() {
		id = NewProductID()
	}
	return &Product{id: id, price: price, category: category, sale: sale}, nil
}

func (p *Product) ID() ProductID    { return p.id }
func (p *Product) Price() float64   { return p.price }
func (p *Product) Category() string { return p.category }

// Sale returns the current discount fraction.
func (p *Product) Sale() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sale
}

// SetSale imposes a discount fraction in [0,1].
func (p *Product) SetSale(sale float64) error {
	if err := validateSale(sale); err != nil {
		return err
	}
	p.mu.Lock()
	p.sale = sale
	p.mu.Unlock()
	return nil
}

// RemoveSale drops any ongoing discount.
func (p *Product) RemoveSale() {
	p.mu.Lock()
	p.sale = 0
	p.mu.Unlock()
}

// EffectivePrice is the charged unit price: price × (1 − sale) × tax.
func (p *Product) EffectivePrice(tax TaxFactor) float64 {
	return tax.Apply(p.price * (1 - p.Sale()))
}

func validateSale(sale float64) error {
	if math.IsNaN(sale) || sale < 0 || sale > 1 {
		return ErrInvalidSale
	}
	return nil
}
