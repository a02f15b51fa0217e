package domain

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
)

// CustomerID identifies a shopper session.
type CustomerID uuid.UUID

func NewCustomerID() CustomerID { return CustomerID(uuid.New()) }

func ParseCustomerID(raw string) (CustomerID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return CustomerID{}, err
	}
	return CustomerID(id), nil
}

func (id CustomerID) String() string { return uuid.UUID(id).String() }

// CheckoutStatus enumerates checkout outcomes.
type CheckoutStatus string

const (
	CheckoutCompleted CheckoutStatus = "completed"
	// CheckoutDeclined means the balance did not cover the total. Nothing changed.
	CheckoutDeclined CheckoutStatus = "declined"
)

// CheckoutResult reports a checkout attempt. Order is nil when declined.
type CheckoutResult struct {
	Status  CheckoutStatus
	Order   *Order
	Total   float64
	Balance float64
}

// Declined reports whether the balance was insufficient.
func (r CheckoutResult) Declined() bool { return r.Status == CheckoutDeclined }

// Customer owns a balance, exactly one live cart and an append-only order
// history. All methods are serialized on the customer, so checkout is a
// single indivisible step with respect to the cart it consumes.
type Customer struct {
	id CustomerID

	mu      sync.Mutex
	balance float64
	orders  []*Order
	cart    Cart
}

// NewCustomer creates a customer whose cart reserves from keeper.
func NewCustomer(keeper StockKeeper) *Customer {
	return RestoreCustomer(NewCustomerID(), keeper)
}

// RestoreCustomer creates an empty customer with a known identity.
func RestoreCustomer(id CustomerID, keeper StockKeeper) *Customer {
	return &Customer{id: id, cart: NewShoppingCart(keeper)}
}

// WithCart swaps the live cart, for alternative Cart variants.
func (c *Customer) WithCart(cart Cart) *Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cart != nil {
		c.cart = cart
	}
	return c
}

func (c *Customer) ID() CustomerID { return c.id }

func (c *Customer) Balance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balance
}

// Orders returns the completed orders, oldest first.
func (c *Customer) Orders() []*Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := make([]*Order, len(c.orders))
	copy(list, c.orders)
	return list
}

// CartLines returns the entries currently held in the cart.
func (c *Customer) CartLines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Lines()
}

func (c *Customer) AddToCart(ctx context.Context, product *Product, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.AddItem(ctx, product, quantity)
}

func (c *Customer) RemoveFromCart(ctx context.Context, product *Product, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.RemoveSomeOf(ctx, product, quantity)
}

func (c *Customer) RemoveAllFromCart(ctx context.Context, product *Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.RemoveAllOf(ctx, product)
}

// TopUp credits the balance. Negative and non-finite amounts are rejected.
func (c *Customer) TopUp(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: top up %v", ErrInvalidQuantity, amount)
	}
	c.mu.Lock()
	c.balance += amount
	c.mu.Unlock()
	return nil
}

// Checkout buys the cart contents. When the balance does not cover the total
// the attempt is declined and the balance, history and cart stay untouched.
// Otherwise the total is deducted, the order appended and the cart cleared;
// this is the only path by which held stock leaves the system for good.
func (c *Customer) Checkout(tax TaxFactor) CheckoutResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	order := c.cart.Finalize()
	total := order.Total(tax)
	if c.balance < total {
		return CheckoutResult{Status: CheckoutDeclined, Total: total, Balance: c.balance}
	}
	c.balance -= total
	c.orders = append(c.orders, order)
	c.cart.Clear()
	return CheckoutResult{Status: CheckoutCompleted, Order: order, Total: total, Balance: c.balance}
}
