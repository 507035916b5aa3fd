package handlers

import (
	"swiftsub/internal/services/wallet"
	"swiftsub/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet returns the caller's balance and recent ledger entries.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balance, err := h.walletService.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to get balance")
	}
	history, err := h.walletService.GetHistory(c.Context(), claims.UserID, c.QueryInt("limit", 20))
	if err != nil {
		return utils.InternalError(c, "failed to get history")
	}

	return utils.Success(c, fiber.Map{
		"balance": balance,
		"entries": history,
	})
}
