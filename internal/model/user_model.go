package model

import "time"

type User struct {
	UserID       int64      `json:"userid"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsStaff      bool       `json:"is_staff"`
	IsActive     bool       `json:"is_active"`
	ConfirmToken *string    `json:"-"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
