package repositories

import (
	"context"
	"errors"
	"fmt"

	"swiftsub/internal/models"

	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepository) FindByReference(ctx context.Context, reference string) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry: %w", err)
	}
	return &entry, nil
}

func (r *ledgerRepository) MarkStatus(ctx context.Context, reference string, to models.LedgerStatus) (bool, error) {
	if !models.LedgerStatusPending.CanTransition(to) {
		return false, fmt.Errorf("ledger status %q is not reachable from pending", to)
	}
	result := r.db.WithContext(ctx).
		Model(&models.LedgerEntry{}).
		Where("reference = ? AND status = ?", reference, models.LedgerStatusPending).
		Update("status", to)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark ledger entry: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepository) ListUnattributed(ctx context.Context, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("user_id IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unattributed entries: %w", err)
	}
	return entries, nil
}
