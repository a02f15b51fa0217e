package domain

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestStore_ReserveThenRestockRestoresStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	id := NewProductID()
	require.NoError(t, store.Restock(ctx, id, 7))

	for amount := 1; amount <= 7; amount++ {
		require.NoError(t, store.Reserve(ctx, id, amount))
		require.NoError(t, store.Restock(ctx, id, amount))
		qty, err := store.Quantity(ctx, id)
		require.NoError(t, err)
		require.Equal(t, 7, qty)
	}
}

func TestStore_ReserveUnknownProduct(t *testing.T) {
	store := NewStore()
	err := store.Reserve(context.Background(), NewProductID(), 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReserveMoreThanAvailableKeepsStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	id := NewProductID()
	require.NoError(t, store.Restock(ctx, id, 2))

	err := store.Reserve(ctx, id, 10)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.NotErrorIs(t, err, ErrNotFound)

	qty, err := store.Quantity(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 2, qty)
}

func TestStore_ReserveExactlyAllStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	id := NewProductID()
	require.NoError(t, store.Restock(ctx, id, 3))
	require.NoError(t, store.Reserve(ctx, id, 3))

	qty, err := store.Quantity(ctx, id)
	require.NoError(t, err)
	require.Zero(t, qty)
	require.ErrorIs(t, store.Reserve(ctx, id, 1), ErrInsufficientStock)
}

func TestStore_RejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	id := NewProductID()
	require.NoError(t, store.Restock(ctx, id, 1))

	require.ErrorIs(t, store.Reserve(ctx, id, 0), ErrInvalidQuantity)
	require.ErrorIs(t, store.Reserve(ctx, id, -2), ErrInvalidQuantity)
	require.ErrorIs(t, store.Restock(ctx, id, 0), ErrInvalidQuantity)

	qty, err := store.Quantity(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, qty)
}

func TestStore_RestockCreatesAndAccumulates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a, b := NewProductID(), NewProductID()

	require.NoError(t, store.Restock(ctx, a, 1))
	require.NoError(t, store.Restock(ctx, a, 4))
	require.NoError(t, store.Restock(ctx, b, 2))

	levels, err := store.Levels(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	byID := map[ProductID]int{}
	for _, level := range levels {
		byID[level.ProductID] = level.Quantity
	}
	require.Equal(t, 5, byID[a])
	require.Equal(t, 2, byID[b])
}

func TestStore_ConcurrentReservationsNeverOversell(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	id := NewProductID()
	require.NoError(t, store.Restock(ctx, id, 100))

	var reserved atomic.Int64
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			if err := store.Reserve(ctx, id, 3); err == nil {
				reserved.Add(3)
			} else if !errors.Is(err, ErrInsufficientStock) {
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	qty, err := store.Quantity(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(99), reserved.Load())
	require.Equal(t, 1, qty)
}
