package handlers

import (
	"errors"

	"swiftsub/internal/repositories"
	agentsvc "swiftsub/internal/services/agent"
	"swiftsub/internal/services/checkout"
	"swiftsub/internal/services/wallet"
	"swiftsub/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler groups the manual-resolution endpoints: wallet adjustments,
// stale order failure, agent decisions and the reconciliation queue.
type AdminHandler struct {
	walletService   wallet.Service
	checkoutService checkout.Service
	agentService    agentsvc.Service
	store           repositories.Store
}

func NewAdminHandler(walletService wallet.Service, checkoutService checkout.Service, agentService agentsvc.Service, store repositories.Store) *AdminHandler {
	return &AdminHandler{
		walletService:   walletService,
		checkoutService: checkoutService,
		agentService:    agentService,
		store:           store,
	}
}

// WalletTransaction applies a manual credit or debit to a user's wallet.
func (h *AdminHandler) WalletTransaction(c *fiber.Ctx) error {
	var input struct {
		UserID      uint    `json:"user_id"`
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Description string  `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	newBalance, err := h.walletService.AdminTransaction(c.Context(), input.UserID, input.Amount, input.Type, input.Description)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInvalidAmount):
			return utils.BadRequest(c, "amount must be greater than zero")
		case errors.Is(err, wallet.ErrUnknownTransaction):
			return utils.BadRequest(c, "type must be credit or debit")
		case errors.Is(err, repositories.ErrUserNotFound):
			return utils.NotFound(c, "user not found")
		default:
			return utils.InternalError(c, "wallet transaction failed")
		}
	}

	return utils.Success(c, fiber.Map{"new_balance": newBalance})
}

// FailOrder marks a stale pending order failed after manual review.
func (h *AdminHandler) FailOrder(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return utils.BadRequest(c, "invalid order id")
	}

	if err := h.checkoutService.MarkFailed(c.Context(), uint(orderID)); err != nil {
		switch {
		case errors.Is(err, repositories.ErrOrderNotFound):
			return utils.NotFound(c, "order not found")
		case errors.Is(err, checkout.ErrOrderNotPending):
			return utils.Conflict(c, "order is not pending")
		default:
			return utils.InternalError(c, "failed to fail order")
		}
	}
	return utils.Success(c, fiber.Map{"message": "order marked failed"})
}

// DecideAgent approves or rejects an agent validation request.
func (h *AdminHandler) DecideAgent(c *fiber.Ctx) error {
	requestID, err := c.ParamsInt("id")
	if err != nil || requestID <= 0 {
		return utils.BadRequest(c, "invalid request id")
	}

	var input struct {
		Decision string `json:"decision"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.agentService.Decide(c.Context(), uint(requestID), input.Decision); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAgentNotFound):
			return utils.NotFound(c, "agent validation request not found")
		case errors.Is(err, agentsvc.ErrAlreadyDecided):
			return utils.Conflict(c, "request already decided")
		case errors.Is(err, agentsvc.ErrUnknownDecision):
			return utils.BadRequest(c, "decision must be approve or reject")
		default:
			return utils.InternalError(c, "failed to decide request")
		}
	}
	return utils.Success(c, fiber.Map{"message": "decision recorded"})
}

// ReconciliationQueue lists verified payments with no user association.
func (h *AdminHandler) ReconciliationQueue(c *fiber.Ctx) error {
	entries, err := h.store.Ledger().ListUnattributed(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return utils.InternalError(c, "failed to list unattributed payments")
	}
	return utils.Success(c, fiber.Map{"entries": entries})
}
