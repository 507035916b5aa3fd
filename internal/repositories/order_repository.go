package repositories

import (
	"context"
	"errors"
	"fmt"

	"swiftsub/internal/models"

	"gorm.io/gorm"
)

// OrderRepository stores purchase orders. Gateway-path orders are finalized
// by reference with a conditional update so a replayed verification cannot
// finalize twice.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByReference(ctx context.Context, reference string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.Order, error)

	// MarkSuccessByReference finalizes a pending order; false means no
	// pending order carries that reference.
	MarkSuccessByReference(ctx context.Context, reference string) (bool, error)

	// MarkFailed is the admin resolution for a stale pending order; false
	// means the order was not pending.
	MarkFailed(ctx context.Context, id uint) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) GetByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by reference: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) MarkSuccessByReference(ctx context.Context, reference string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("reference = ? AND status = ?", reference, models.OrderStatusPending).
		Update("status", models.OrderStatusSuccess)
	if result.Error != nil {
		return false, fmt.Errorf("failed to finalize order: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) MarkFailed(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.OrderStatusPending).
		Update("status", models.OrderStatusFailed)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark order failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
