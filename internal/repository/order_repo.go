package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Step-sa/net-f/internal/model"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateFromCart converts the cart into an order inside a single transaction:
// compute total from the snapshotted item prices, insert the order, copy each
// cart item into an order item, append the initial history row, and clear the
// cart. If any step fails nothing persists and the cart stays intact.
func (r *OrderRepository) CreateFromCart(ctx context.Context, cartID, userID, contactID int64) (*model.OrderView, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT cartitemid, product_info_id, quantity, price
		FROM cart_items WHERE cart_id=$1 ORDER BY cartitemid
	`, cartID)
	if err != nil {
		return nil, err
	}
	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.CartItemID, &it.ProductInfoID, &it.Quantity, &it.Price); err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, services.ErrEmptyCart
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	var order model.Order
	order.Number = uuid.NewString()
	order.Total = total
	order.Status = model.StatusNew
	order.UserID = &userID
	order.ContactID = &contactID
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, contact_id, number, created_at, total, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING orderid, created_at
	`, userID, contactID, order.Number, time.Now(), total, order.Status).Scan(&order.OrderID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	view := &model.OrderView{Order: order, Items: []model.OrderItem{}}
	for _, it := range items {
		var oi model.OrderItem
		oi.OrderID = order.OrderID
		oi.ProductInfoID = it.ProductInfoID
		oi.Quantity = it.Quantity
		oi.Price = it.Price
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_info_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING orderitemid
		`, oi.OrderID, oi.ProductInfoID, oi.Quantity, oi.Price).Scan(&oi.OrderItemID)
		if err != nil {
			return nil, err
		}
		view.Items = append(view.Items, oi)
	}

	var first model.OrderStatusEntry
	first.OrderID = order.OrderID
	first.Status = model.StatusNew
	err = tx.QueryRow(ctx, `
		INSERT INTO order_status_history (order_id, status, changed_at, note)
		VALUES ($1, $2, $3, '')
		RETURNING changed_at
	`, order.OrderID, model.StatusNew, time.Now()).Scan(&first.ChangedAt)
	if err != nil {
		return nil, err
	}
	view.History = []model.OrderStatusEntry{first}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return view, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.OrderID, &o.UserID, &o.ContactID, &o.Number, &o.CreatedAt, &o.Total, &o.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order", services.ErrNotFound)
		}
		return nil, err
	}
	return &o, nil
}

const orderColumns = `orderid, user_id, contact_id, number, created_at, total, status`

func (r *OrderRepository) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1`
	return scanOrder(r.DB.QueryRow(ctx, query, orderID))
}

func (r *OrderRepository) listQuery(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.listQuery(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY orderid DESC`)
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.listQuery(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY orderid DESC`, userID)
}

// View returns the fully materialized order: items, status history and the
// referenced contact if it still exists.
func (r *OrderRepository) View(ctx context.Context, orderID int64) (*model.OrderView, error) {
	o, err := r.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view := &model.OrderView{Order: *o, Items: []model.OrderItem{}, History: []model.OrderStatusEntry{}}

	rows, err := r.DB.Query(ctx, `
		SELECT orderitemid, order_id, product_info_id, quantity, price
		FROM order_items WHERE order_id=$1 ORDER BY orderitemid
	`, orderID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductInfoID, &it.Quantity, &it.Price); err != nil {
			rows.Close()
			return nil, err
		}
		view.Items = append(view.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx, `
		SELECT order_id, status, changed_at, note
		FROM order_status_history WHERE order_id=$1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var h model.OrderStatusEntry
		if err := rows.Scan(&h.OrderID, &h.Status, &h.ChangedAt, &h.Note); err != nil {
			rows.Close()
			return nil, err
		}
		view.History = append(view.History, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if o.ContactID != nil {
		c, err := scanContact(r.DB.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE contactid=$1`, *o.ContactID))
		if err == nil {
			view.Contact = c
		} else if !errors.Is(err, services.ErrNotFound) {
			return nil, err
		}
	}
	return view, nil
}

// UpdateStatus sets the order status and appends one history row, both inside
// a single transaction so the audit trail never drifts from the order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE orders SET status=$1 WHERE orderid=$2`, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order", services.ErrNotFound)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, status, changed_at, note)
		VALUES ($1, $2, $3, $4)
	`, orderID, status, time.Now(), note)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SetStatusOwned updates the status of an order owned by the given user
// without touching the history log. Used only by the legacy confirm action.
func (r *OrderRepository) SetStatusOwned(ctx context.Context, orderID, userID int64, status model.OrderStatus) error {
	tag, err := r.DB.Exec(ctx, `UPDATE orders SET status=$1 WHERE orderid=$2 AND user_id=$3`, status, orderID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order", services.ErrNotFound)
	}
	return nil
}
