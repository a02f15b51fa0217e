package domain

import (
	"context"
	"fmt"
	"time"
)

// Cart is a per-customer staging area holding reserved stock.
type Cart interface {
	AddItem(ctx context.Context, product *Product, quantity int) error
	RemoveAllOf(ctx context.Context, product *Product) error
	RemoveSomeOf(ctx context.Context, product *Product, toRemove int) error
	// Finalize snapshots the cart into an Order. The holds stay reserved and
	// the cart is left as is.
	Finalize() *Order
	// Clear empties the cart without restocking; the holds are consumed.
	Clear()
	Lines() []Line
	Len() int
}

// ShoppingCart is the Store-backed Cart. Entries always equal the amount
// reserved from the keeper and not yet returned or sold. It is not safe for
// concurrent use; Customer serializes access.
type ShoppingCart struct {
	keeper StockKeeper
	items  map[ProductID]Line
	now    func() time.Time
}

var _ Cart = (*ShoppingCart)(nil)

func NewShoppingCart(keeper StockKeeper) *ShoppingCart {
	return &ShoppingCart{keeper: keeper, items: map[ProductID]Line{}, now: time.Now}
}

// WithClock overrides the order timestamp source.
func (c *ShoppingCart) WithClock(now func() time.Time) *ShoppingCart {
	if now != nil {
		c.now = now
	}
	return c
}

func (c *ShoppingCart) AddItem(ctx context.Context, product *Product, quantity int) error {
	if product == nil {
		return fmt.Errorf("%w: nil product", ErrNotFound)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: add %d of %s", ErrInvalidQuantity, quantity, product.ID())
	}
	if err := c.keeper.Reserve(ctx, product.ID(), quantity); err != nil {
		return err
	}
	line := c.items[product.ID()]
	line.Product = product
	line.Quantity += quantity
	c.items[product.ID()] = line
	return nil
}

func (c *ShoppingCart) RemoveAllOf(ctx context.Context, product *Product) error {
	line, err := c.held(product)
	if err != nil {
		return err
	}
	if err := c.keeper.Restock(ctx, line.Product.ID(), line.Quantity); err != nil {
		return err
	}
	delete(c.items, line.Product.ID())
	return nil
}

func (c *ShoppingCart) RemoveSomeOf(ctx context.Context, product *Product, toRemove int) error {
	if toRemove <= 0 {
		return fmt.Errorf("%w: remove %d", ErrInvalidQuantity, toRemove)
	}
	line, err := c.held(product)
	if err != nil {
		return err
	}
	if toRemove >= line.Quantity {
		return c.RemoveAllOf(ctx, product)
	}
	if err := c.keeper.Restock(ctx, line.Product.ID(), toRemove); err != nil {
		return err
	}
	line.Quantity -= toRemove
	c.items[line.Product.ID()] = line
	return nil
}

func (c *ShoppingCart) Finalize() *Order {
	return newOrder(c.items, c.now())
}

func (c *ShoppingCart) Clear() {
	c.items = map[ProductID]Line{}
}

// Lines returns the held entries sorted by product id.
func (c *ShoppingCart) Lines() []Line {
	return sortedLines(c.items)
}

// Quantity returns the held amount of a product, zero when absent.
func (c *ShoppingCart) Quantity(id ProductID) int {
	return c.items[id].Quantity
}

func (c *ShoppingCart) Len() int {
	return len(c.items)
}

func (c *ShoppingCart) held(product *Product) (Line, error) {
	if product == nil {
		return Line{}, fmt.Errorf("%w: nil product", ErrNotFound)
	}
	line, ok := c.items[product.ID()]
	if !ok || line.Quantity <= 0 {
		return Line{}, fmt.Errorf("%w: %s is not in the cart", ErrNotFound, product.ID())
	}
	return line, nil
}
