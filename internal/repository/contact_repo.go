package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Step-sa/net-f/internal/model"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactRepository struct {
	DB *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `contactid, user_id, last_name, first_name, patronymic, email, phone, city, street, house, building, structure, apartment`

func scanContact(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ContactID, &c.UserID, &c.LastName, &c.FirstName, &c.Patronymic, &c.Email, &c.Phone,
		&c.City, &c.Street, &c.House, &c.Building, &c.Structure, &c.Apartment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: contact", services.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *model.Contact) (int64, error) {
	var id int64
	query := `
		INSERT INTO contacts (user_id, last_name, first_name, patronymic, email, phone, city, street, house, building, structure, apartment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING contactid
	`
	if err := r.DB.QueryRow(ctx, query, c.UserID, c.LastName, c.FirstName, c.Patronymic, c.Email, c.Phone,
		c.City, c.Street, c.House, c.Building, c.Structure, c.Apartment).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetForUser resolves a contact scoped to its owner.
func (r *ContactRepository) GetForUser(ctx context.Context, contactID, userID int64) (*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contactid=$1 AND user_id=$2`
	return scanContact(r.DB.QueryRow(ctx, query, contactID, userID))
}

func (r *ContactRepository) ListByUser(ctx context.Context, userID int64) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id=$1 ORDER BY contactid`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *ContactRepository) Update(ctx context.Context, c *model.Contact) error {
	query := `
		UPDATE contacts
		SET last_name=$1, first_name=$2, patronymic=$3, email=$4, phone=$5,
		    city=$6, street=$7, house=$8, building=$9, structure=$10, apartment=$11
		WHERE contactid=$12 AND user_id=$13
	`
	tag, err := r.DB.Exec(ctx, query, c.LastName, c.FirstName, c.Patronymic, c.Email, c.Phone,
		c.City, c.Street, c.House, c.Building, c.Structure, c.Apartment, c.ContactID, c.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: contact", services.ErrNotFound)
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, contactID, userID int64) error {
	query := `DELETE FROM contacts WHERE contactid=$1 AND user_id=$2`
	tag, err := r.DB.Exec(ctx, query, contactID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: contact", services.ErrNotFound)
	}
	return nil
}
