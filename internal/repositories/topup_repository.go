package repositories

import (
	"context"
	"errors"
	"fmt"

	"swiftsub/internal/models"

	"gorm.io/gorm"
)

// TopupRepository stores manual top-up requests. MarkDecided is the
// concurrency arbiter for the approval workflow: two admins deciding the
// same request race on a conditional update and exactly one wins.
type TopupRepository interface {
	Create(ctx context.Context, req *models.TopupRequest) error
	GetByID(ctx context.Context, id uint) (*models.TopupRequest, error)
	ListPending(ctx context.Context, limit int) ([]models.TopupRequest, error)

	// MarkDecided transitions the request from pending to the given terminal
	// status; false means zero rows matched (already decided).
	MarkDecided(ctx context.Context, id uint, to models.TopupStatus) (bool, error)
}

type topupRepository struct {
	db *gorm.DB
}

func NewTopupRepository(db *gorm.DB) TopupRepository {
	return &topupRepository{db: db}
}

func (r *topupRepository) Create(ctx context.Context, req *models.TopupRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create topup request: %w", err)
	}
	return nil
}

func (r *topupRepository) GetByID(ctx context.Context, id uint) (*models.TopupRequest, error) {
	var req models.TopupRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopupNotFound
		}
		return nil, fmt.Errorf("failed to get topup request: %w", err)
	}
	return &req, nil
}

func (r *topupRepository) ListPending(ctx context.Context, limit int) ([]models.TopupRequest, error) {
	var reqs []models.TopupRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", models.TopupStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending topups: %w", err)
	}
	return reqs, nil
}

func (r *topupRepository) MarkDecided(ctx context.Context, id uint, to models.TopupStatus) (bool, error) {
	if !to.Terminal() {
		return false, fmt.Errorf("topup status %q is not a decision", to)
	}
	result := r.db.WithContext(ctx).
		Model(&models.TopupRequest{}).
		Where("id = ? AND status = ?", id, models.TopupStatusPending).
		Update("status", to)
	if result.Error != nil {
		return false, fmt.Errorf("failed to decide topup request: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
