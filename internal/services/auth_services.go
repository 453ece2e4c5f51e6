package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/Step-sa/net-f/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 6
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// UserStore is the persistence contract for accounts.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, firstName, lastName string, confirmToken *string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ConfirmEmail(ctx context.Context, token string) error
}

type AuthService struct {
	Users  UserStore
	Mailer EmailSender

	// ConfirmRequired makes registration create inactive accounts that
	// must follow the emailed confirmation link before logging in.
	ConfirmRequired bool
	PublicBaseURL   string
}

func NewAuthService(users UserStore, mailer EmailSender, confirmRequired bool, publicBaseURL string) *AuthService {
	return &AuthService{Users: users, Mailer: mailer, ConfirmRequired: confirmRequired, PublicBaseURL: publicBaseURL}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLen)
	}
	return nil
}

// Register creates an account. With ConfirmRequired the account starts
// inactive and a confirmation link is emailed; otherwise it is active
// immediately.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (int64, error) {
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	var confirmToken *string
	if s.ConfirmRequired {
		t := uuid.NewString()
		confirmToken = &t
	}
	userID, err := s.Users.Create(ctx, email, string(hash), firstName, lastName, confirmToken)
	if err != nil {
		return 0, err
	}
	if confirmToken != nil && s.Mailer != nil {
		confirmURL := s.PublicBaseURL + "/api/auth/confirm-email?token=" + *confirmToken
		if err := s.Mailer.SendConfirmationEmail(ctx, email, confirmURL); err != nil {
			return userID, fmt.Errorf("send confirmation email: %w", err)
		}
	}
	return userID, nil
}

// ConfirmEmail activates the account matching the emailed token.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	return s.Users.ConfirmEmail(ctx, token)
}

// Me returns the current account state, not what the token claimed at
// login time.
func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Login authenticates by email + password and returns the user without the
// password hash. A wrong email and a wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrEmailNotConfirmed
	}
	u.PasswordHash = ""
	return u, nil
}
