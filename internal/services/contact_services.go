package services

import (
	"context"
	"fmt"

	"github.com/Step-sa/net-f/internal/model"
)

// ContactStore is the persistence contract for the contact directory.
type ContactStore interface {
	Create(ctx context.Context, c *model.Contact) (int64, error)
	GetForUser(ctx context.Context, contactID, userID int64) (*model.Contact, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Contact, error)
	Update(ctx context.Context, c *model.Contact) error
	Delete(ctx context.Context, contactID, userID int64) error
}

type ContactService struct {
	Contacts ContactStore
}

func NewContactService(contacts ContactStore) *ContactService {
	return &ContactService{Contacts: contacts}
}

func validateContact(c *model.Contact) error {
	if c.LastName == "" || c.FirstName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if c.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !emailRegex.MatchString(c.Email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}

func (s *ContactService) Create(ctx context.Context, userID int64, c *model.Contact) (*model.Contact, error) {
	if err := validateContact(c); err != nil {
		return nil, err
	}
	c.UserID = userID
	id, err := s.Contacts.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ContactID = id
	return c, nil
}

func (s *ContactService) List(ctx context.Context, userID int64) ([]model.Contact, error) {
	return s.Contacts.ListByUser(ctx, userID)
}

func (s *ContactService) Get(ctx context.Context, userID, contactID int64) (*model.Contact, error) {
	return s.Contacts.GetForUser(ctx, contactID, userID)
}

func (s *ContactService) Update(ctx context.Context, userID int64, c *model.Contact) error {
	if err := validateContact(c); err != nil {
		return err
	}
	c.UserID = userID
	return s.Contacts.Update(ctx, c)
}

func (s *ContactService) Delete(ctx context.Context, userID, contactID int64) error {
	return s.Contacts.Delete(ctx, contactID, userID)
}
