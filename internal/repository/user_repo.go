package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Step-sa/net-f/internal/model"
	"github.com/Step-sa/net-f/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user and returns the created id. A nil confirmToken
// means the account starts active (confirmation disabled).
func (r *UserRepository) Create(ctx context.Context, email, passwordHash, firstName, lastName string, confirmToken *string) (int64, error) {
	var id int64
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, is_staff, is_active, confirm_token, created_at)
		VALUES ($1, $2, $3, $4, false, $5, $6, $7)
		RETURNING userid
	`
	active := confirmToken == nil
	if err := r.DB.QueryRow(ctx, query, email, passwordHash, firstName, lastName, active, confirmToken, time.Now()).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, services.ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT userid, email, password_hash, first_name, last_name, is_staff, is_active, confirm_token, created_at
			FROM users
			WHERE email=$1`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsStaff, &u.IsActive, &u.ConfirmToken, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", services.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	query := `SELECT userid, email, first_name, last_name, is_staff, is_active, created_at FROM users WHERE userid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&u.UserID, &u.Email, &u.FirstName, &u.LastName, &u.IsStaff, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", services.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ConfirmEmail activates the account holding the given confirmation token
// and clears the token so it cannot be replayed.
func (r *UserRepository) ConfirmEmail(ctx context.Context, token string) error {
	query := `UPDATE users SET is_active=true, confirm_token=NULL WHERE confirm_token=$1`
	tag, err := r.DB.Exec(ctx, query, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: confirmation token", services.ErrNotFound)
	}
	return nil
}
