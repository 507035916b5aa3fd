package handlers

import (
	"errors"

	"swiftsub/internal/repositories"
	"swiftsub/internal/services/topup"
	"swiftsub/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TopupHandler struct {
	topupService topup.Service
}

func NewTopupHandler(topupService topup.Service) *TopupHandler {
	return &TopupHandler{topupService: topupService}
}

// Submit records a manual top-up claim awaiting admin review.
func (h *TopupHandler) Submit(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount        float64 `json:"amount"`
		Reference     string  `json:"reference"`
		PaymentMethod string  `json:"payment_method"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	req, err := h.topupService.Submit(c.Context(), claims.UserID, input.Amount, input.Reference, input.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, topup.ErrInvalidAmount):
			return utils.BadRequest(c, "amount must be greater than zero")
		case errors.Is(err, topup.ErrMissingReference):
			return utils.BadRequest(c, "reference is required")
		case errors.Is(err, repositories.ErrDuplicateReference):
			return utils.Conflict(c, "reference already submitted")
		default:
			return utils.InternalError(c, "failed to submit topup")
		}
	}

	return utils.Success(c, fiber.Map{"topup": req})
}

// Decide approves or rejects a pending top-up (admin).
func (h *TopupHandler) Decide(c *fiber.Ctx) error {
	topupID, err := c.ParamsInt("id")
	if err != nil || topupID <= 0 {
		return utils.BadRequest(c, "invalid topup id")
	}

	var input struct {
		Decision string `json:"decision"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	err = h.topupService.Decide(c.Context(), uint(topupID), input.Decision)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTopupNotFound):
			return utils.NotFound(c, "topup request not found")
		case errors.Is(err, topup.ErrAlreadyDecided):
			return utils.Conflict(c, "topup request already decided")
		case errors.Is(err, topup.ErrUnknownDecision):
			return utils.BadRequest(c, "decision must be approve or reject")
		default:
			return utils.InternalError(c, "failed to decide topup")
		}
	}

	return utils.Success(c, fiber.Map{"message": "decision recorded"})
}

// ListPending returns pending top-ups for admin review.
func (h *TopupHandler) ListPending(c *fiber.Ctx) error {
	reqs, err := h.topupService.ListPending(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return utils.InternalError(c, "failed to list topups")
	}
	return utils.Success(c, fiber.Map{"topups": reqs})
}
