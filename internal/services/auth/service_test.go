package auth

import (
	"context"
	"testing"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
	"swiftsub/internal/repositories/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	t.Run("stores a hash and the user role", func(t *testing.T) {
		users := new(mocks.UserRepository)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "jane@example.com" &&
				u.Role == models.RoleUser &&
				u.Password != "s3cret" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret")) == nil
		})).Return(nil)

		s := NewService(users, "test-secret")
		user, err := s.Register(context.Background(), RegisterInput{
			Email: "jane@example.com", Password: "s3cret", Name: "Jane", Phone: "0551234567",
		})

		assert.NoError(t, err)
		assert.Equal(t, 0.0, user.WalletBalance)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email surfaces unchanged", func(t *testing.T) {
		users := new(mocks.UserRepository)
		users.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateEmail)

		s := NewService(users, "test-secret")
		_, err := s.Register(context.Background(), RegisterInput{
			Email: "jane@example.com", Password: "s3cret", Name: "Jane", Phone: "0551234567",
		})

		assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)

	storedUser := func() *models.User {
		u := &models.User{Email: "jane@example.com", Password: string(hash), Role: models.RoleUser}
		u.ID = 7
		return u
	}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		users := new(mocks.UserRepository)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(storedUser(), nil)

		s := NewService(users, "test-secret")
		token, user, err := s.Login(context.Background(), "jane@example.com", "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(7), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mocks.UserRepository)
		users.On("GetByEmail", mock.Anything, "jane@example.com").Return(storedUser(), nil)

		s := NewService(users, "test-secret")
		_, _, err := s.Login(context.Background(), "jane@example.com", "nope")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email reads the same as wrong password", func(t *testing.T) {
		users := new(mocks.UserRepository)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, repositories.ErrUserNotFound)

		s := NewService(users, "test-secret")
		_, _, err := s.Login(context.Background(), "nobody@example.com", "s3cret")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
