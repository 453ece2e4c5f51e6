package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is created lazily on first access and owned by exactly one user.
// The row survives checkout; only its items are cleared.
type Cart struct {
	CartID    int64      `json:"cartid"`
	UserID    int64      `json:"-"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// CartItem holds a price snapshot taken when the item was first added.
// The snapshot is never refreshed from the catalog.
type CartItem struct {
	CartItemID    int64           `json:"cartitemid"`
	CartID        int64           `json:"-"`
	ProductInfoID int64           `json:"productinfoid"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
}

// CartItemView is what the API exposes (joined with the product name)
type CartItemView struct {
	CartItemID    int64           `json:"cartitemid"`
	ProductInfoID int64           `json:"productinfoid"`
	Product       string          `json:"product"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// CartResponse is returned when calling GET /api/cart. Total is derived,
// never persisted on the cart row.
type CartResponse struct {
	CartID int64           `json:"cartid"`
	Items  []CartItemView  `json:"items"`
	Total  decimal.Decimal `json:"total"`
}
