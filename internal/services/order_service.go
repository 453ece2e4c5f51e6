package services

import (
	"context"
	"fmt"

	"github.com/Step-sa/net-f/internal/model"
)

// Actor is the explicit identity every order operation runs as. Handlers
// build it from token claims; nothing here reads ambient request state.
type Actor struct {
	UserID int64
	Staff  bool
}

// OrderStore is the persistence contract for orders. CreateFromCart and
// UpdateStatus are atomic: either every write lands or none does.
type OrderStore interface {
	CreateFromCart(ctx context.Context, cartID, userID, contactID int64) (*model.OrderView, error)
	View(ctx context.Context, orderID int64) (*model.OrderView, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string) error
	SetStatusOwned(ctx context.Context, orderID, userID int64, status model.OrderStatus) error
}

// ContactFinder resolves a contact scoped to its owner.
type ContactFinder interface {
	GetForUser(ctx context.Context, contactID, userID int64) (*model.Contact, error)
}

type OrderService struct {
	Orders   OrderStore
	Carts    CartStore
	Contacts ContactFinder
}

func NewOrderService(orders OrderStore, carts CartStore, contacts ContactFinder) *OrderService {
	return &OrderService{Orders: orders, Carts: carts, Contacts: contacts}
}

// CreateFromCart checks out the actor's cart against one of their contacts.
// Cart and contact ids belonging to someone else resolve to ErrNotFound, an
// empty cart to ErrEmptyCart. The store performs the conversion atomically.
//
// There is no idempotency key: a second call with the same cart id after a
// successful checkout finds the cart empty and fails with ErrEmptyCart.
func (s *OrderService) CreateFromCart(ctx context.Context, actor Actor, cartID, contactID int64) (*model.OrderView, error) {
	cart, err := s.Carts.GetForUser(ctx, cartID, actor.UserID)
	if err != nil {
		return nil, err
	}
	contact, err := s.Contacts.GetForUser(ctx, contactID, actor.UserID)
	if err != nil {
		return nil, err
	}
	items, err := s.Carts.Items(ctx, cart.CartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	view, err := s.Orders.CreateFromCart(ctx, cart.CartID, actor.UserID, contact.ContactID)
	if err != nil {
		return nil, err
	}
	view.Contact = contact
	return view, nil
}

// List returns all orders for staff, the actor's own orders otherwise.
func (s *OrderService) List(ctx context.Context, actor Actor) ([]model.Order, error) {
	if actor.Staff {
		return s.Orders.ListAll(ctx)
	}
	return s.Orders.ListForUser(ctx, actor.UserID)
}

// Get returns a materialized order. Non-staff actors only ever see their own
// orders; anything else is ErrNotFound, never a hint that the order exists.
func (s *OrderService) Get(ctx context.Context, actor Actor, orderID int64) (*model.OrderView, error) {
	view, err := s.Orders.View(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.Staff && (view.UserID == nil || *view.UserID != actor.UserID) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return view, nil
}

// ChangeStatus sets a new status on any order and appends one history row.
// Staff only. The target status must belong to the vocabulary but may follow
// any current status: there is intentionally no transition-legality check.
func (s *OrderService) ChangeStatus(ctx context.Context, actor Actor, orderID int64, status model.OrderStatus, note string) (*model.OrderView, error) {
	if !actor.Staff {
		return nil, fmt.Errorf("%w: staff only", ErrForbidden)
	}
	if !model.KnownStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if err := s.Orders.UpdateStatus(ctx, orderID, status, note); err != nil {
		return nil, err
	}
	return s.Orders.View(ctx, orderID)
}

// Confirm moves the actor's own order to processing. Unlike ChangeStatus it
// is owner-gated rather than staff-gated and writes no history row; both
// quirks are preserved deliberately, see DESIGN.md.
func (s *OrderService) Confirm(ctx context.Context, actor Actor, orderID int64) error {
	return s.Orders.SetStatusOwned(ctx, orderID, actor.UserID, model.StatusProcessing)
}
