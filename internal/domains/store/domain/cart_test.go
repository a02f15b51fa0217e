package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func stockedProduct(t *testing.T, store *Store, price float64, qty int) *Product {
	t.Helper()
	p, err := NewProduct(price, "general", 0)
	require.NoError(t, err)
	require.NoError(t, store.Restock(context.Background(), p.ID(), qty))
	return p
}

func stockOf(t *testing.T, store *Store, p *Product) int {
	t.Helper()
	qty, err := store.Quantity(context.Background(), p.ID())
	require.NoError(t, err)
	return qty
}

func TestShoppingCart_AddThenRemoveAllRestoresStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := stockedProduct(t, store, 10, 5)
	cart := NewShoppingCart(store)

	require.NoError(t, cart.AddItem(ctx, p, 4))
	require.Equal(t, 1, stockOf(t, store, p))
	require.Equal(t, 4, cart.Quantity(p.ID()))

	require.NoError(t, cart.RemoveAllOf(ctx, p))
	require.Equal(t, 5, stockOf(t, store, p))
	require.Zero(t, cart.Len())
}

func TestShoppingCart_AddAccumulates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := stockedProduct(t, store, 10, 5)
	cart := NewShoppingCart(store)

	require.NoError(t, cart.AddItem(ctx, p, 1))
	require.NoError(t, cart.AddItem(ctx, p, 2))
	require.Equal(t, 3, cart.Quantity(p.ID()))
	require.Equal(t, 1, cart.Len())
}

func TestShoppingCart_AddFailuresLeaveCartUnchanged(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := stockedProduct(t, store, 10, 2)
	unstocked, err := NewProduct(10, "general", 0)
	require.NoError(t, err)
	cart := NewShoppingCart(store)
	require.NoError(t, cart.AddItem(ctx, p, 1))

	require.ErrorIs(t, cart.AddItem(ctx, p, 10), ErrInsufficientStock)
	require.ErrorIs(t, cart.AddItem(ctx, unstocked, 1), ErrNotFound)
	require.ErrorIs(t, cart.AddItem(ctx, p, 0), ErrInvalidQuantity)

	require.Equal(t, 1, cart.Quantity(p.ID()))
	require.Equal(t, 1, cart.Len())
	require.Equal(t, 1, stockOf(t, store, p))
}

func TestShoppingCart_RemoveSomeAtOrAboveHeldEqualsRemoveAll(t *testing.T) {
	for _, toRemove := range []int{3, 4, 100} {
		ctx := context.Background()
		someStore, allStore := NewStore(), NewStore()
		p := stockedProduct(t, someStore, 10, 5)
		require.NoError(t, allStore.Restock(ctx, p.ID(), 5))

		some, all := NewShoppingCart(someStore), NewShoppingCart(allStore)
		require.NoError(t, some.AddItem(ctx, p, 3))
		require.NoError(t, all.AddItem(ctx, p, 3))

		require.NoError(t, some.RemoveSomeOf(ctx, p, toRemove))
		require.NoError(t, all.RemoveAllOf(ctx, p))

		require.Equal(t, all.Len(), some.Len())
		require.Equal(t, stockOf(t, allStore, p), stockOf(t, someStore, p))
		require.Equal(t, 5, stockOf(t, someStore, p))
	}
}

func TestShoppingCart_RemoveSomeKeepsEntry(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := stockedProduct(t, store, 10, 5)
	cart := NewShoppingCart(store)
	require.NoError(t, cart.AddItem(ctx, p, 3))

	require.NoError(t, cart.RemoveSomeOf(ctx, p, 1))
	require.Equal(t, 2, cart.Quantity(p.ID()))
	require.Equal(t, 3, stockOf(t, store, p))
}

func TestShoppingCart_RemoveMissingProduct(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := stockedProduct(t, store, 10, 5)
	cart := NewShoppingCart(store)

	require.ErrorIs(t, cart.RemoveAllOf(ctx, p), ErrNotFound)
	require.ErrorIs(t, cart.RemoveSomeOf(ctx, p, 1), ErrNotFound)
	require.ErrorIs(t, cart.RemoveSomeOf(ctx, p, 0), ErrInvalidQuantity)
	require.Equal(t, 5, stockOf(t, store, p))
}

func TestShoppingCart_FinalizeAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := stockedProduct(t, store, 10, 5)
	cart := NewShoppingCart(store)
	require.NoError(t, cart.AddItem(ctx, p, 2))

	order := cart.Finalize()
	require.Equal(t, 2, order.Quantity(p.ID()))
	require.Equal(t, 2, cart.Quantity(p.ID()), "finalize must not clear the cart")
	require.Equal(t, 3, stockOf(t, store, p), "finalize must not touch the store")

	require.NoError(t, cart.AddItem(ctx, p, 1))
	require.Equal(t, 2, order.Quantity(p.ID()), "order is a frozen snapshot")

	cart.Clear()
	require.Zero(t, cart.Len())
	require.Equal(t, 2, stockOf(t, store, p), "clear consumes holds without restocking")
}

type failingKeeper struct {
	*Store
	restockErr error
}

func (k failingKeeper) Restock(ctx context.Context, id ProductID, amount int) error {
	if k.restockErr != nil {
		return k.restockErr
	}
	return k.Store.Restock(ctx, id, amount)
}

func TestShoppingCart_RestockFailureLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := stockedProduct(t, store, 10, 5)
	boom := errors.New("ledger unavailable")
	cart := NewShoppingCart(failingKeeper{Store: store, restockErr: boom})
	require.NoError(t, cart.AddItem(ctx, p, 3))

	require.ErrorIs(t, cart.RemoveSomeOf(ctx, p, 1), boom)
	require.ErrorIs(t, cart.RemoveAllOf(ctx, p), boom)
	require.Equal(t, 3, cart.Quantity(p.ID()))
	require.Equal(t, 2, stockOf(t, store, p))
}
