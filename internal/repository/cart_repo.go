package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Step-sa/net-f/internal/model"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// GetOrCreate returns the user's cart, creating it on first access.
// The upsert keeps concurrent first touches from racing into duplicates.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID int64) (*model.Cart, error) {
	var c model.Cart
	query := `
		INSERT INTO carts (user_id, created_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING cartid, user_id, created_at
	`
	if err := r.DB.QueryRow(ctx, query, userID, time.Now()).Scan(&c.CartID, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetForUser resolves a cart by id scoped to its owner. Another user's cart
// id yields ErrNotFound, never the cart.
func (r *CartRepository) GetForUser(ctx context.Context, cartID, userID int64) (*model.Cart, error) {
	var c model.Cart
	query := `SELECT cartid, user_id, created_at FROM carts WHERE cartid=$1 AND user_id=$2`
	if err := r.DB.QueryRow(ctx, query, cartID, userID).Scan(&c.CartID, &c.UserID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: cart", services.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

// UpsertItem inserts a cart item with the snapshotted price, or increments
// the quantity if the (cart, product_info) pair already exists. The stored
// price is deliberately left alone on conflict.
func (r *CartRepository) UpsertItem(ctx context.Context, cartID, productInfoID int64, qty int, price decimal.Decimal) error {
	query := `
		INSERT INTO cart_items (cart_id, product_info_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_info_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	_, err := r.DB.Exec(ctx, query, cartID, productInfoID, qty, price)
	return err
}

// RemoveItem deletes a cart item only if it belongs to the requesting user's
// cart. Cross-user attempts are indistinguishable from missing items.
func (r *CartRepository) RemoveItem(ctx context.Context, userID, cartItemID int64) error {
	query := `
		DELETE FROM cart_items
		USING carts
		WHERE cart_items.cartitemid=$1
		  AND carts.cartid = cart_items.cart_id
		  AND carts.user_id=$2
	`
	tag, err := r.DB.Exec(ctx, query, cartItemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cart item", services.ErrNotFound)
	}
	return nil
}

// Items returns the cart's items joined with product names, subtotals
// computed from the snapshotted prices.
func (r *CartRepository) Items(ctx context.Context, cartID int64) ([]model.CartItemView, error) {
	query := `
		SELECT ci.cartitemid, ci.product_info_id, p.name, ci.quantity, ci.price
		FROM cart_items ci
		JOIN product_infos pi ON pi.productinfoid = ci.product_info_id
		JOIN products p ON p.productid = pi.product_id
		WHERE ci.cart_id=$1
		ORDER BY ci.cartitemid
	`
	rows, err := r.DB.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.CartItemView{}
	for rows.Next() {
		var it model.CartItemView
		if err := rows.Scan(&it.CartItemID, &it.ProductInfoID, &it.Product, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		it.Subtotal = it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items = append(items, it)
	}
	return items, rows.Err()
}
