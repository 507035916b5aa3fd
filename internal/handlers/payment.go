package handlers

import (
	"errors"

	"swiftsub/internal/models"
	"swiftsub/internal/services/gateway"
	"swiftsub/internal/services/payment"
	"swiftsub/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// VerifyPayment runs the full verify → ledger → balance pipeline for a
// reference the client claims to have paid. Safe to call repeatedly: replays
// come back as already_processed.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	if _, err := extractUserClaims(c); err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Reference string `json:"reference"`
		Kind      string `json:"kind"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Reference == "" {
		return utils.BadRequest(c, "reference is required")
	}
	kind := models.LedgerKind(input.Kind)
	if kind == "" {
		kind = models.LedgerKindTopup
	}

	outcome, err := h.paymentService.ProcessPayment(c.Context(), input.Reference, kind)
	if err != nil {
		if errors.Is(err, gateway.ErrGatewayUnavailable) || errors.Is(err, gateway.ErrReferenceMismatch) {
			// The money may already have moved on the gateway side. Never
			// tell the user the payment failed here.
			return utils.Accepted(c, fiber.Map{
				"status":  "pending",
				"message": "verification pending, please retry shortly or contact support",
			})
		}
		if errors.Is(err, payment.ErrUnsupportedKind) {
			return utils.BadRequest(c, "unsupported payment kind")
		}
		return utils.InternalError(c, "payment processing failed")
	}

	return utils.Success(c, outcome)
}
