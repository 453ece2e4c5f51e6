package services

import (
	"context"
	"fmt"

	"github.com/Step-sa/net-f/internal/model"

	"github.com/shopspring/decimal"
)

// CartStore is the persistence contract for carts. Missing or foreign-owned
// resources come back as ErrNotFound.
type CartStore interface {
	GetOrCreate(ctx context.Context, userID int64) (*model.Cart, error)
	GetForUser(ctx context.Context, cartID, userID int64) (*model.Cart, error)
	UpsertItem(ctx context.Context, cartID, productInfoID int64, qty int, price decimal.Decimal) error
	RemoveItem(ctx context.Context, userID, cartItemID int64) error
	Items(ctx context.Context, cartID int64) ([]model.CartItemView, error)
}

// ProductFinder is the only window the cart has into the catalog.
type ProductFinder interface {
	GetProductInfo(ctx context.Context, id int64) (*model.ProductInfo, error)
}

type CartService struct {
	Carts   CartStore
	Catalog ProductFinder
}

func NewCartService(carts CartStore, catalog ProductFinder) *CartService {
	return &CartService{Carts: carts, Catalog: catalog}
}

// Add puts qty units of a product into the user's cart. The catalog price is
// snapshotted on first insert; adding the same product again only increments
// the quantity and keeps the original snapshot.
func (s *CartService) Add(ctx context.Context, userID, productInfoID int64, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	pi, err := s.Catalog.GetProductInfo(ctx, productInfoID)
	if err != nil {
		return err
	}
	cart, err := s.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(ctx, cart.CartID, pi.ProductInfoID, qty, pi.Price)
}

// Remove deletes a cart item scoped to the requesting user's cart.
func (s *CartService) Remove(ctx context.Context, userID, cartItemID int64) error {
	return s.Carts.RemoveItem(ctx, userID, cartItemID)
}

// Get returns the cart with its items and a derived total. The total is
// computed here on every read and never persisted.
func (s *CartService) Get(ctx context.Context, userID int64) (*model.CartResponse, error) {
	cart, err := s.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.Carts.Items(ctx, cart.CartID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return &model.CartResponse{CartID: cart.CartID, Items: items, Total: total}, nil
}
