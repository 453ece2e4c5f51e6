package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Step-sa/net-f/internal/model"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory implementation of the store interfaces with the
// same contracts as the pgx repositories: owner scoping resolves to
// ErrNotFound, upserts increment quantity without touching the price
// snapshot, and CreateFromCart applies either all of its writes or none.
// failCheckout simulates a mid-transaction failure.
type memStore struct {
	mu     sync.Mutex
	nextID int64

	products   map[int64]model.ProductInfo
	carts      map[int64]*model.Cart
	cartByUser map[int64]int64
	cartItems  map[int64]*model.CartItem
	contacts   map[int64]*model.Contact
	orders     map[int64]*model.Order
	orderItems map[int64][]model.OrderItem
	history    map[int64][]model.OrderStatusEntry
	users      map[int64]*model.User

	failCheckout error
}

var (
	_ CartStore     = (*memStore)(nil)
	_ ProductFinder = (*memStore)(nil)
	_ ContactFinder = contactFinder{}
	_ OrderStore    = (*memStore)(nil)
	_ UserStore     = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		products:   map[int64]model.ProductInfo{},
		carts:      map[int64]*model.Cart{},
		cartByUser: map[int64]int64{},
		cartItems:  map[int64]*model.CartItem{},
		contacts:   map[int64]*model.Contact{},
		orders:     map[int64]*model.Order{},
		orderItems: map[int64][]model.OrderItem{},
		history:    map[int64][]model.OrderStatusEntry{},
		users:      map[int64]*model.User{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addProduct(id int64, name, price string) {
	m.products[id] = model.ProductInfo{
		ProductInfoID: id,
		Name:          name,
		Quantity:      100,
		Price:         decimal.RequireFromString(price),
	}
}

func (m *memStore) setPrice(id int64, price string) {
	p := m.products[id]
	p.Price = decimal.RequireFromString(price)
	m.products[id] = p
}

func (m *memStore) addContact(userID int64) *model.Contact {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &model.Contact{
		ContactID: m.id(),
		UserID:    userID,
		LastName:  "Doe",
		FirstName: "Jane",
		Email:     "jane@example.com",
	}
	m.contacts[c.ContactID] = c
	return c
}

// --- ProductFinder ---

func (m *memStore) GetProductInfo(ctx context.Context, id int64) (*model.ProductInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pi, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product info", ErrNotFound)
	}
	return &pi, nil
}

// --- CartStore ---

func (m *memStore) GetOrCreate(ctx context.Context, userID int64) (*model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.cartByUser[userID]; ok {
		return m.carts[id], nil
	}
	now := time.Now()
	c := &model.Cart{CartID: m.id(), UserID: userID, CreatedAt: &now}
	m.carts[c.CartID] = c
	m.cartByUser[userID] = c.CartID
	return c, nil
}

func (m *memStore) GetForUser(ctx context.Context, cartID, userID int64) (*model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok || c.UserID != userID {
		return nil, fmt.Errorf("%w: cart", ErrNotFound)
	}
	return c, nil
}

func (m *memStore) UpsertItem(ctx context.Context, cartID, productInfoID int64, qty int, price decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.cartItems {
		if it.CartID == cartID && it.ProductInfoID == productInfoID {
			it.Quantity += qty
			return nil
		}
	}
	it := &model.CartItem{CartItemID: m.id(), CartID: cartID, ProductInfoID: productInfoID, Quantity: qty, Price: price}
	m.cartItems[it.CartItemID] = it
	return nil
}

func (m *memStore) RemoveItem(ctx context.Context, userID, cartItemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.cartItems[cartItemID]
	if !ok {
		return fmt.Errorf("%w: cart item", ErrNotFound)
	}
	cart := m.carts[it.CartID]
	if cart == nil || cart.UserID != userID {
		return fmt.Errorf("%w: cart item", ErrNotFound)
	}
	delete(m.cartItems, cartItemID)
	return nil
}

func (m *memStore) Items(ctx context.Context, cartID int64) ([]model.CartItemView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemsLocked(cartID), nil
}

func (m *memStore) itemsLocked(cartID int64) []model.CartItemView {
	items := []model.CartItemView{}
	for id := int64(1); id <= m.nextID; id++ {
		it, ok := m.cartItems[id]
		if !ok || it.CartID != cartID {
			continue
		}
		items = append(items, model.CartItemView{
			CartItemID:    it.CartItemID,
			ProductInfoID: it.ProductInfoID,
			Product:       m.products[it.ProductInfoID].Name,
			Quantity:      it.Quantity,
			Price:         it.Price,
			Subtotal:      it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return items
}

// --- ContactFinder ---

func (m *memStore) GetForUserContact(ctx context.Context, contactID, userID int64) (*model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[contactID]
	if !ok || c.UserID != userID {
		return nil, fmt.Errorf("%w: contact", ErrNotFound)
	}
	return c, nil
}

// contactFinder adapts memStore to ContactFinder; CartStore already claims
// the GetForUser method name for carts.
type contactFinder struct{ *memStore }

func (f contactFinder) GetForUser(ctx context.Context, contactID, userID int64) (*model.Contact, error) {
	return f.memStore.GetForUserContact(ctx, contactID, userID)
}

// --- OrderStore ---

func (m *memStore) CreateFromCart(ctx context.Context, cartID, userID, contactID int64) (*model.OrderView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.itemsLocked(cartID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}

	order := model.Order{
		OrderID:   m.id(),
		UserID:    &userID,
		ContactID: &contactID,
		Number:    fmt.Sprintf("T-%d", m.nextID),
		CreatedAt: time.Now(),
		Total:     total,
		Status:    model.StatusNew,
	}
	view := &model.OrderView{Order: order, Items: []model.OrderItem{}}
	for _, it := range items {
		view.Items = append(view.Items, model.OrderItem{
			OrderItemID:   m.id(),
			OrderID:       order.OrderID,
			ProductInfoID: it.ProductInfoID,
			Quantity:      it.Quantity,
			Price:         it.Price,
		})
	}
	view.History = []model.OrderStatusEntry{{OrderID: order.OrderID, Status: model.StatusNew, ChangedAt: time.Now()}}

	// Everything above is staged; the injected failure aborts before any
	// state mutates, mirroring a rolled-back transaction.
	if m.failCheckout != nil {
		return nil, m.failCheckout
	}

	m.orders[order.OrderID] = &view.Order
	m.orderItems[order.OrderID] = view.Items
	m.history[order.OrderID] = view.History
	for id, it := range m.cartItems {
		if it.CartID == cartID {
			delete(m.cartItems, id)
		}
	}
	return view, nil
}

func (m *memStore) View(ctx context.Context, orderID int64) (*model.OrderView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	view := &model.OrderView{Order: *o}
	view.Items = append([]model.OrderItem{}, m.orderItems[orderID]...)
	view.History = append([]model.OrderStatusEntry{}, m.history[orderID]...)
	if o.ContactID != nil {
		if c, ok := m.contacts[*o.ContactID]; ok {
			view.Contact = c
		}
	}
	return view, nil
}

func (m *memStore) ListAll(ctx context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Order{}
	for id := int64(1); id <= m.nextID; id++ {
		if o, ok := m.orders[id]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memStore) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Order{}
	for id := int64(1); id <= m.nextID; id++ {
		if o, ok := m.orders[id]; ok && o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memStore) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: order", ErrNotFound)
	}
	o.Status = status
	m.history[orderID] = append(m.history[orderID], model.OrderStatusEntry{
		OrderID: orderID, Status: status, ChangedAt: time.Now(), Note: note,
	})
	return nil
}

func (m *memStore) SetStatusOwned(ctx context.Context, orderID, userID int64, status model.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.UserID == nil || *o.UserID != userID {
		return fmt.Errorf("%w: order", ErrNotFound)
	}
	o.Status = status
	return nil
}

// --- UserStore ---

func (m *memStore) Create(ctx context.Context, email, passwordHash, firstName, lastName string, confirmToken *string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return 0, ErrEmailTaken
		}
	}
	now := time.Now()
	u := &model.User{
		UserID:       m.id(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     confirmToken == nil,
		ConfirmToken: confirmToken,
		CreatedAt:    &now,
	}
	m.users[u.UserID] = u
	return u.UserID, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: user", ErrNotFound)
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ConfirmEmail(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ConfirmToken != nil && *u.ConfirmToken == token {
			u.IsActive = true
			u.ConfirmToken = nil
			return nil
		}
	}
	return fmt.Errorf("%w: confirmation token", ErrNotFound)
}
