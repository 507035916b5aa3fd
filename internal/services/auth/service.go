// Package auth covers the minimum account lifecycle the payment core needs:
// registration (which creates the zero-balance wallet with the account) and
// login with JWT issuance.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type service struct {
	users     repositories.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewService creates a new auth service.
func NewService(users repositories.UserRepository, jwtSecret string) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{users: users, jwtSecret: jwtSecret, tokenTTL: 24 * time.Hour}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// WalletBalance defaults to 0: the wallet exists from the first moment
	// the account does.
	user := &models.User{
		Email:    input.Email,
		Password: string(hash),
		Name:     input.Name,
		Phone:    input.Phone,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := &models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}
