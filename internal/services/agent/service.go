// Package agent implements the agent validation workflow. It shares the
// topup workflow's approve/reject terminal-state discipline, but approval's
// exactly-once side effect is a role upgrade, not a balance change.
package agent

import (
	"context"
	"errors"
	"fmt"

	"swiftsub/internal/models"
	"swiftsub/internal/repositories"
)

// Decisions accepted by Decide.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Service errors
var (
	ErrAlreadyDecided  = errors.New("agent validation request already decided")
	ErrUnknownDecision = errors.New("unknown decision")
)

type Service interface {
	Submit(ctx context.Context, userID uint, reference string) (*models.AgentValidationRequest, error)
	Decide(ctx context.Context, requestID uint, decision string) error
}

type service struct {
	store repositories.Store
}

// NewService creates a new agent validation service.
func NewService(store repositories.Store) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store}
}

func (s *service) Submit(ctx context.Context, userID uint, reference string) (*models.AgentValidationRequest, error) {
	req := &models.AgentValidationRequest{
		UserID:    userID,
		Reference: reference,
		Status:    models.AgentStatusPending,
	}
	if err := s.store.Agents().Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) Decide(ctx context.Context, requestID uint, decision string) error {
	var to models.AgentStatus
	switch decision {
	case DecisionApprove:
		to = models.AgentStatusApproved
	case DecisionReject:
		to = models.AgentStatusRejected
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDecision, decision)
	}

	req, err := s.store.Agents().GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	return s.store.ExecuteInTransaction(func(tx repositories.Store) error {
		decided, err := tx.Agents().MarkDecided(ctx, requestID, to)
		if err != nil {
			return err
		}
		if !decided {
			return ErrAlreadyDecided
		}
		if to == models.AgentStatusApproved {
			if _, err := tx.Users().PromoteToAgent(ctx, req.UserID); err != nil {
				return err
			}
		}
		return nil
	})
}
