package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddSnapshotsPrice(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "Widget", "10.00")
	svc := NewCartService(store, store)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 7, 1, 2))

	// A later catalog price change must not leak into the cart.
	store.setPrice(1, "99.99")
	require.NoError(t, svc.Add(ctx, 7, 1, 3))

	resp, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.True(t, resp.Items[0].Price.Equal(decimal.RequireFromString("10.00")),
		"price = %s, want the snapshot 10.00", resp.Items[0].Price)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("50.00")),
		"total = %s", resp.Total)
}

func TestCartAddRejectsBadQuantity(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "Widget", "10.00")
	svc := NewCartService(store, store)
	ctx := context.Background()

	for _, qty := range []int{0, -3} {
		err := svc.Add(ctx, 7, 1, qty)
		assert.ErrorIs(t, err, ErrInvalidInput, "qty=%d", qty)
	}
	resp, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestCartAddUnknownProduct(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store, store)

	err := svc.Add(context.Background(), 7, 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartGetDerivesExactTotal(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "Widget", "10.00")
	store.addProduct(2, "Gadget", "5.00")
	svc := NewCartService(store, store)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 7, 1, 2))
	require.NoError(t, svc.Add(ctx, 7, 2, 1))

	resp, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("25.00")),
		"total = %s, want 25.00", resp.Total)
}

func TestCartRemoveScopedToOwner(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "Widget", "10.00")
	svc := NewCartService(store, store)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 7, 1, 1))
	resp, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	itemID := resp.Items[0].CartItemID

	// Another user cannot remove it and learns nothing about it.
	err = svc.Remove(ctx, 8, itemID)
	assert.ErrorIs(t, err, ErrNotFound)
	resp, err = svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)

	require.NoError(t, svc.Remove(ctx, 7, itemID))
	resp, err = svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestCartIsPerUser(t *testing.T) {
	store := newMemStore()
	store.addProduct(1, "Widget", "10.00")
	svc := NewCartService(store, store)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 7, 1, 2))

	other, err := svc.Get(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, other.Items)
	assert.True(t, other.Total.IsZero())
}
