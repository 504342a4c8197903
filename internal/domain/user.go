package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// User validation errors. Email problems wrap ErrValidation.
var (
	ErrEmptyUserID       = errors.New("user ID cannot be empty")
	ErrEmptyEmail        = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail      = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPasswordHash = errors.New("password hash cannot be empty")
)

var validate = validator.New()

// User is the identity exposed to the rest of the application.
// It never carries a password; credentials live on Account.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// NewUser creates a User with a freshly generated ID.
func NewUser(email, name string) (*User, error) {
	user := &User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if err := validate.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}

	return nil
}

// Clone returns a copy of the user, or nil for a nil receiver.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Account is a registry record: a user plus the stored secret used to
// check a login attempt. The email on the embedded user is the lookup key.
type Account struct {
	User         User   `json:"user"`
	PasswordHash string `json:"password_hash"`
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if err := a.User.Validate(); err != nil {
		return err
	}

	if a.PasswordHash == "" {
		return ErrEmptyPasswordHash
	}

	return nil
}
