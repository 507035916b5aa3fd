package handlers

import (
	"errors"

	"swiftsub/internal/repositories"
	agentsvc "swiftsub/internal/services/agent"
	"swiftsub/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AgentHandler struct {
	agentService agentsvc.Service
}

func NewAgentHandler(agentService agentsvc.Service) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// Submit opens an agent validation request for the caller, keyed by the
// payment reference that funded the registration.
func (h *AgentHandler) Submit(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Reference string `json:"reference"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Reference == "" {
		return utils.BadRequest(c, "reference is required")
	}

	req, err := h.agentService.Submit(c.Context(), claims.UserID, input.Reference)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return utils.Conflict(c, "reference already submitted")
		}
		return utils.InternalError(c, "failed to submit request")
	}
	return utils.Success(c, fiber.Map{"request": req})
}
