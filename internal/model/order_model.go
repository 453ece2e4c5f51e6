package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCanceled   OrderStatus = "canceled"
)

// KnownStatus reports whether s is part of the status vocabulary.
// Any known status may follow any other: staff status changes are
// deliberately permissive, there is no transition table.
func KnownStatus(s OrderStatus) bool {
	switch s {
	case StatusNew, StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// Order is immutable after checkout except for status and total.
// Total equals the sum of its items' quantity*price as of creation and is
// never recomputed.
type Order struct {
	OrderID   int64           `json:"orderid"`
	UserID    *int64          `json:"userid,omitempty"`
	ContactID *int64          `json:"contactid,omitempty"`
	Number    string          `json:"number"`
	CreatedAt time.Time       `json:"created_at"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
}

// OrderItem is a point-in-time snapshot taken at checkout. Deleting the
// source cart item or changing the catalog price later does not affect it.
type OrderItem struct {
	OrderItemID   int64           `json:"orderitemid"`
	OrderID       int64           `json:"-"`
	ProductInfoID int64           `json:"productinfoid"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
}

// OrderStatusEntry is one append-only audit row. Rows are never updated or
// deleted; the current truth lives on the order itself.
type OrderStatusEntry struct {
	OrderID   int64       `json:"-"`
	Status    OrderStatus `json:"status"`
	ChangedAt time.Time   `json:"changed_at"`
	Note      string      `json:"note,omitempty"`
}

// OrderView is the fully materialized order returned by the API.
type OrderView struct {
	Order
	Contact *Contact           `json:"contact,omitempty"`
	Items   []OrderItem        `json:"items"`
	History []OrderStatusEntry `json:"status_history"`
}
