package repositories

import (
	"context"
	"errors"
	"fmt"

	"swiftsub/internal/models"

	"gorm.io/gorm"
)

// AgentRepository stores agent validation requests. Same conditional-update
// discipline as topups; the reference links a request to the gateway payment
// that funded the registration.
type AgentRepository interface {
	Create(ctx context.Context, req *models.AgentValidationRequest) error
	GetByID(ctx context.Context, id uint) (*models.AgentValidationRequest, error)
	GetByReference(ctx context.Context, reference string) (*models.AgentValidationRequest, error)
	MarkDecided(ctx context.Context, id uint, to models.AgentStatus) (bool, error)
}

type agentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(ctx context.Context, req *models.AgentValidationRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create agent request: %w", err)
	}
	return nil
}

func (r *agentRepository) GetByID(ctx context.Context, id uint) (*models.AgentValidationRequest, error) {
	var req models.AgentValidationRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent request: %w", err)
	}
	return &req, nil
}

func (r *agentRepository) GetByReference(ctx context.Context, reference string) (*models.AgentValidationRequest, error) {
	var req models.AgentValidationRequest
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent request by reference: %w", err)
	}
	return &req, nil
}

func (r *agentRepository) MarkDecided(ctx context.Context, id uint, to models.AgentStatus) (bool, error) {
	if !to.Terminal() {
		return false, fmt.Errorf("agent status %q is not a decision", to)
	}
	result := r.db.WithContext(ctx).
		Model(&models.AgentValidationRequest{}).
		Where("id = ? AND status = ?", id, models.AgentStatusPending).
		Update("status", to)
	if result.Error != nil {
		return false, fmt.Errorf("failed to decide agent request: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
