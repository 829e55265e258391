package repository

import (
	"context"
	"fmt"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"

	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(ctx context.Context, tx *gorm.DB, token *model.AccessToken) error
	Exists(ctx context.Context, db *gorm.DB, jti string) (bool, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

type gormTokenRepository struct{}

func NewGormTokenRepository() TokenRepository {
	return &gormTokenRepository{}
}

func (r *gormTokenRepository) Create(ctx context.Context, tx *gorm.DB, token *model.AccessToken) error {
	result := tx.WithContext(ctx).Create(token)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating access token in DB", "error", result.Error, "user_id", token.UserID)
		return fmt.Errorf("gormTokenRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormTokenRepository) Exists(ctx context.Context, db *gorm.DB, jti string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.AccessToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking access token in DB", "error", err)
		return false, fmt.Errorf("gormTokenRepository.Exists: %w", err)
	}
	return count > 0, nil
}

// DeleteByUser revokes every outstanding token of a user.
func (r *gormTokenRepository) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	result := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AccessToken{})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error deleting access tokens in DB", "error", result.Error, "user_id", userID)
		return fmt.Errorf("gormTokenRepository.DeleteByUser: %w", result.Error)
	}
	return nil
}
