package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"

	"gorm.io/gorm"
)

type LevelRepository interface {
	Create(ctx context.Context, tx *gorm.DB, level *model.Level) error
	FindByID(ctx context.Context, db *gorm.DB, levelID uint) (*model.Level, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Level, error)
	Update(ctx context.Context, tx *gorm.DB, levelID uint, name string) error
	Exists(ctx context.Context, db *gorm.DB, levelID uint) (bool, error)
}

type gormLevelRepository struct{}

func NewGormLevelRepository() LevelRepository {
	return &gormLevelRepository{}
}

func (r *gormLevelRepository) Create(ctx context.Context, tx *gorm.DB, level *model.Level) error {
	result := tx.WithContext(ctx).Create(level)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating level in DB", "error", result.Error)
		return fmt.Errorf("gormLevelRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormLevelRepository) FindByID(ctx context.Context, db *gorm.DB, levelID uint) (*model.Level, error) {
	var level model.Level
	result := db.WithContext(ctx).First(&level, levelID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding level by ID in DB", "error", result.Error, "level_id", levelID)
		return nil, fmt.Errorf("gormLevelRepository.FindByID: %w", result.Error)
	}
	return &level, nil
}

func (r *gormLevelRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Level, error) {
	var levels []*model.Level
	result := db.WithContext(ctx).Order("id ASC").Find(&levels)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing levels in DB", "error", result.Error)
		return nil, fmt.Errorf("gormLevelRepository.FindAll: %w", result.Error)
	}
	return levels, nil
}

func (r *gormLevelRepository) Update(ctx context.Context, tx *gorm.DB, levelID uint, name string) error {
	result := tx.WithContext(ctx).Model(&model.Level{}).Where("id = ?", levelID).Update("name", name)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating level in DB", "error", result.Error, "level_id", levelID)
		return fmt.Errorf("gormLevelRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormLevelRepository) Exists(ctx context.Context, db *gorm.DB, levelID uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Level{}).Where("id = ?", levelID).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking level existence in DB", "error", err)
		return false, fmt.Errorf("gormLevelRepository.Exists: %w", err)
	}
	return count > 0, nil
}
