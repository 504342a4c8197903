package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("ada@example.com", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.Name)

	_, err = NewUser("", "Nobody")
	assert.ErrorIs(t, err, ErrEmptyEmail)
	assert.ErrorIs(t, err, ErrValidation)

	for _, email := range []string{"not-an-email", "ada@", "@example.com", "ada example.com"} {
		_, err = NewUser(email, "Ada")
		assert.ErrorIs(t, err, ErrInvalidEmail, email)
		assert.ErrorIs(t, err, ErrValidation, email)
	}
}

func TestUserClone(t *testing.T) {
	t.Parallel()

	user := &User{ID: "1", Email: "a@example.com", Name: "A"}
	c := user.Clone()
	c.Name = "B"

	assert.Equal(t, "A", user.Name)

	var nilUser *User
	assert.Nil(t, nilUser.Clone())
}

func TestAccountValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		account Account
		wantErr error
	}{
		{
			name:    "valid",
			account: Account{User: User{ID: "1", Email: "a@example.com"}, PasswordHash: "hash"},
		},
		{
			name:    "missing id",
			account: Account{User: User{Email: "a@example.com"}, PasswordHash: "hash"},
			wantErr: ErrEmptyUserID,
		},
		{
			name:    "malformed email",
			account: Account{User: User{ID: "1", Email: "not-an-email"}, PasswordHash: "hash"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "missing hash",
			account: Account{User: User{ID: "1", Email: "a@example.com"}},
			wantErr: ErrEmptyPasswordHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
