package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, category *model.Category) error
	FindByID(ctx context.Context, db *gorm.DB, categoryID uint) (*model.Category, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Category, error)
	Update(ctx context.Context, tx *gorm.DB, categoryID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, categoryID uint) error
	Exists(ctx context.Context, db *gorm.DB, categoryID uint) (bool, error)
}

type gormCategoryRepository struct{}

func NewGormCategoryRepository() CategoryRepository {
	return &gormCategoryRepository{}
}

func (r *gormCategoryRepository) Create(ctx context.Context, tx *gorm.DB, category *model.Category) error {
	result := tx.WithContext(ctx).Create(category)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating category in DB", "error", result.Error)
		return fmt.Errorf("gormCategoryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCategoryRepository) FindByID(ctx context.Context, db *gorm.DB, categoryID uint) (*model.Category, error) {
	var category model.Category
	result := db.WithContext(ctx).First(&category, categoryID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding category by ID in DB", "error", result.Error, "category_id", categoryID)
		return nil, fmt.Errorf("gormCategoryRepository.FindByID: %w", result.Error)
	}
	return &category, nil
}

func (r *gormCategoryRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Category, error) {
	var categories []*model.Category
	result := db.WithContext(ctx).Order("id DESC").Find(&categories)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing categories in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCategoryRepository.FindAll: %w", result.Error)
	}
	return categories, nil
}

func (r *gormCategoryRepository) Update(ctx context.Context, tx *gorm.DB, categoryID uint, updates map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(&model.Category{}).Where("id = ?", categoryID).Updates(updates)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating category in DB", "error", result.Error, "category_id", categoryID)
		return fmt.Errorf("gormCategoryRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the row; texts and words go with it through the ON DELETE
// CASCADE constraints.
func (r *gormCategoryRepository) Delete(ctx context.Context, tx *gorm.DB, categoryID uint) error {
	result := tx.WithContext(ctx).Delete(&model.Category{}, categoryID)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error deleting category in DB", "error", result.Error, "category_id", categoryID)
		return fmt.Errorf("gormCategoryRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCategoryRepository) Exists(ctx context.Context, db *gorm.DB, categoryID uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking category existence in DB", "error", err)
		return false, fmt.Errorf("gormCategoryRepository.Exists: %w", err)
	}
	return count > 0, nil
}
