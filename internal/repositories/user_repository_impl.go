package repositories

import (
	"context"
	"errors"
	"fmt"

	"swiftsub/internal/models"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetBalance(ctx context.Context, userID uint) (float64, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("wallet_balance").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return user.WalletBalance, nil
}

func (r *userRepository) CreditBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to credit balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrUserNotFound
	}
	return r.GetBalance(ctx, userID)
}

func (r *userRepository) DebitBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	// The balance check and the decrement are one statement; the row count
	// tells us whether the guard held. There is no window for a concurrent
	// debit to spend the same funds.
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to debit balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, userID); err != nil {
			return 0, err
		}
		return 0, ErrInsufficientFunds
	}
	return r.GetBalance(ctx, userID)
}

func (r *userRepository) ForceDebitBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to force debit balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrUserNotFound
	}
	return r.GetBalance(ctx, userID)
}

func (r *userRepository) PromoteToAgent(ctx context.Context, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role <> ?", userID, models.RoleAgent).
		Update("role", models.RoleAgent)
	if result.Error != nil {
		return false, fmt.Errorf("failed to promote user: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
