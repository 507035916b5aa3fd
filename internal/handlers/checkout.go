package handlers

import (
	"errors"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
	"swiftsub/internal/services/checkout"
	"swiftsub/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	checkoutService checkout.Service
}

func NewCheckoutHandler(checkoutService checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount      float64     `json:"amount"`
		Method      string      `json:"method"`
		Description string      `json:"description"`
		Items       models.JSON `json:"items"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	order, err := h.checkoutService.Checkout(c.Context(), claims.UserID, input.Amount, input.Method, input.Description, input.Items)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInsufficientFunds):
			return utils.BadRequest(c, "insufficient wallet balance")
		case errors.Is(err, checkout.ErrInvalidAmount):
			return utils.BadRequest(c, "invalid amount")
		case errors.Is(err, checkout.ErrUnknownMethod):
			return utils.BadRequest(c, "method must be wallet or gateway")
		default:
			return utils.InternalError(c, "checkout failed")
		}
	}

	return utils.Success(c, fiber.Map{
		"order":         order,
		"charge_amount": order.ChargeAmount(),
	})
}

func (h *CheckoutHandler) ListOrders(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	orders, err := h.checkoutService.ListOrders(c.Context(), claims.UserID, c.QueryInt("limit", 20))
	if err != nil {
		return utils.InternalError(c, "failed to list orders")
	}
	return utils.Success(c, fiber.Map{"orders": orders})
}
