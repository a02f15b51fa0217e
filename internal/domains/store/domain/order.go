package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OrderID identifies a finalized order.
type OrderID uuid.UUID

func (id OrderID) String() string { return uuid.UUID(id).String() }

// Line is one product entry of a cart or an order. Cart lines price at the
// product's current sale; order lines carry the sale captured at finalize.
type Line struct {
	Product  *Product
	Quantity int

	frozen bool
	sale   float64
}

// Sale returns the discount the line is priced with.
func (l Line) Sale() float64 {
	if l.frozen {
		return l.sale
	}
	return l.Product.Sale()
}

// UnitPrice is the effective price of one unit of the line.
func (l Line) UnitPrice(tax TaxFactor) float64 {
	return tax.Apply(l.Product.Price() * (1 - l.Sale()))
}

// Subtotal is Quantity × UnitPrice.
func (l Line) Subtotal(tax TaxFactor) float64 {
	return float64(l.Quantity) * l.UnitPrice(tax)
}

// Order is an immutable snapshot of cart contents taken at finalize time.
// Quantities and sale fractions are both captured, so later sale changes
// never reprice a placed order.
type Order struct {
	id       OrderID
	placedAt time.Time
	lines    map[ProductID]Line
}

func newOrder(lines map[ProductID]Line, now time.Time) *Order {
	snapshot := make(map[ProductID]Line, len(lines))
	for id, line := range lines {
		line.sale = line.Sale()
		line.frozen = true
		snapshot[id] = line
	}
	return &Order{id: OrderID(uuid.New()), placedAt: now, lines: snapshot}
}

func (o *Order) ID() OrderID         { return o.id }
func (o *Order) PlacedAt() time.Time { return o.placedAt }

// Quantity returns the ordered amount of a product, zero when absent.
func (o *Order) Quantity(id ProductID) int {
	return o.lines[id].Quantity
}

// Lines returns a copy of the order lines sorted by product id.
func (o *Order) Lines() []Line {
	return sortedLines(o.lines)
}

// Total is Σ quantity × effective price. Lines are summed in id order so the
// result is bit-for-bit repeatable.
func (o *Order) Total(tax TaxFactor) float64 {
	var total float64
	for _, line := range sortedLines(o.lines) {
		total += line.Subtotal(tax)
	}
	return total
}

func sortedLines(lines map[ProductID]Line) []Line {
	list := make([]Line, 0, len(lines))
	for _, line := range lines {
		list = append(list, line)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Product.ID().String() < list[j].Product.ID().String()
	})
	return list
}
