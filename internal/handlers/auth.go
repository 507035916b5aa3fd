package handlers

import (
	"errors"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
	"swiftsub/internal/services/auth"
	"swiftsub/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// extractUserClaims is shared by all handlers operating on the caller's
// account.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Email == "" || input.Password == "" || input.Name == "" || input.Phone == "" {
		return utils.BadRequest(c, "email, password, name and phone are required")
	}

	user, err := h.authService.Register(c.Context(), auth.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Phone:    input.Phone,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return utils.Conflict(c, "email or phone already registered")
		}
		return utils.InternalError(c, "failed to register")
	}

	return utils.Success(c, fiber.Map{
		"user_id": user.ID,
		"email":   user.Email,
		"balance": user.WalletBalance,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	token, user, err := h.authService.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "invalid email or password")
		}
		return utils.InternalError(c, "failed to log in")
	}

	return utils.Success(c, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
