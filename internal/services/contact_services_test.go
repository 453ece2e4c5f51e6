package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Step-sa/net-f/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memContacts struct {
	nextID   int64
	contacts map[int64]*model.Contact
}

var _ ContactStore = (*memContacts)(nil)

func newMemContacts() *memContacts {
	return &memContacts{contacts: map[int64]*model.Contact{}}
}

func (m *memContacts) Create(ctx context.Context, c *model.Contact) (int64, error) {
	m.nextID++
	cp := *c
	cp.ContactID = m.nextID
	m.contacts[cp.ContactID] = &cp
	return cp.ContactID, nil
}

func (m *memContacts) GetForUser(ctx context.Context, contactID, userID int64) (*model.Contact, error) {
	c, ok := m.contacts[contactID]
	if !ok || c.UserID != userID {
		return nil, fmt.Errorf("%w: contact", ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (m *memContacts) ListByUser(ctx context.Context, userID int64) ([]model.Contact, error) {
	out := []model.Contact{}
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.contacts[id]; ok && c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memContacts) Update(ctx context.Context, c *model.Contact) error {
	cur, ok := m.contacts[c.ContactID]
	if !ok || cur.UserID != c.UserID {
		return fmt.Errorf("%w: contact", ErrNotFound)
	}
	cp := *c
	m.contacts[c.ContactID] = &cp
	return nil
}

func (m *memContacts) Delete(ctx context.Context, contactID, userID int64) error {
	c, ok := m.contacts[contactID]
	if !ok || c.UserID != userID {
		return fmt.Errorf("%w: contact", ErrNotFound)
	}
	delete(m.contacts, contactID)
	return nil
}

func validContact() *model.Contact {
	return &model.Contact{
		LastName:  "Doe",
		FirstName: "Jane",
		Email:     "jane@example.com",
		City:      "Moscow",
		Street:    "Tverskaya",
		House:     "1",
	}
}

func TestContactCreateAndGet(t *testing.T) {
	svc := NewContactService(newMemContacts())
	ctx := context.Background()

	created, err := svc.Create(ctx, 7, validContact())
	require.NoError(t, err)
	assert.NotZero(t, created.ContactID)
	assert.Equal(t, int64(7), created.UserID)

	got, err := svc.Get(ctx, 7, created.ContactID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
}

func TestContactCreateValidation(t *testing.T) {
	svc := NewContactService(newMemContacts())
	ctx := context.Background()

	c := validContact()
	c.FirstName = ""
	_, err := svc.Create(ctx, 7, c)
	assert.ErrorIs(t, err, ErrInvalidInput)

	c = validContact()
	c.Email = "not-an-email"
	_, err = svc.Create(ctx, 7, c)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestContactScopedToOwner(t *testing.T) {
	svc := NewContactService(newMemContacts())
	ctx := context.Background()

	created, err := svc.Create(ctx, 7, validContact())
	require.NoError(t, err)

	_, err = svc.Get(ctx, 8, created.ContactID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, 8, created.ContactID)
	assert.ErrorIs(t, err, ErrNotFound)

	upd := validContact()
	upd.ContactID = created.ContactID
	err = svc.Update(ctx, 8, upd)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestContactUpdateAndDelete(t *testing.T) {
	svc := NewContactService(newMemContacts())
	ctx := context.Background()

	created, err := svc.Create(ctx, 7, validContact())
	require.NoError(t, err)

	upd := validContact()
	upd.ContactID = created.ContactID
	upd.City = "Kazan"
	require.NoError(t, svc.Update(ctx, 7, upd))

	got, err := svc.Get(ctx, 7, created.ContactID)
	require.NoError(t, err)
	assert.Equal(t, "Kazan", got.City)

	require.NoError(t, svc.Delete(ctx, 7, created.ContactID))
	_, err = svc.Get(ctx, 7, created.ContactID)
	assert.ErrorIs(t, err, ErrNotFound)
}
