package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"

	"gorm.io/gorm"
)

type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.Word) error
	FindByID(ctx context.Context, db *gorm.DB, wordID uint) (*model.Word, error)
	FindByTextID(ctx context.Context, db *gorm.DB, textID uint) ([]*model.Word, error)
	Update(ctx context.Context, tx *gorm.DB, wordID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, wordID uint) error
	List(ctx context.Context, db *gorm.DB, f model.WordFilter, perPage int) ([]*model.Word, int64, error)
	Exists(ctx context.Context, db *gorm.DB, wordID uint) (bool, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.Word) error {
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating word in DB", "error", result.Error)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID uint) (*model.Word, error) {
	var word model.Word
	result := db.WithContext(ctx).First(&word, wordID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding word by ID in DB", "error", result.Error, "word_id", wordID)
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindByTextID(ctx context.Context, db *gorm.DB, textID uint) ([]*model.Word, error) {
	var words []*model.Word
	result := db.WithContext(ctx).Where("text_id = ?", textID).Order("id ASC").Find(&words)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error finding words by text in DB", "error", result.Error, "text_id", textID)
		return nil, fmt.Errorf("gormWordRepository.FindByTextID: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, wordID uint, updates map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(&model.Word{}).Where("id = ?", wordID).Updates(updates)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating word in DB", "error", result.Error, "word_id", wordID)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, wordID uint) error {
	result := tx.WithContext(ctx).Delete(&model.Word{}, wordID)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error deleting word in DB", "error", result.Error, "word_id", wordID)
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// List mirrors the text listing one level deeper; search tokens OR-match
// against the localized word fields.
func (r *gormWordRepository) List(ctx context.Context, db *gorm.DB, f model.WordFilter, perPage int) ([]*model.Word, int64, error) {
	q := db.WithContext(ctx).Model(&model.Word{})

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.LevelID != nil {
		q = q.Where("levels_id = ?", *f.LevelID)
	}
	if f.TextID != nil {
		q = q.Where("text_id = ?", *f.TextID)
	}
	if parts := strings.Fields(f.Search); len(parts) > 0 {
		var conds []string
		var args []interface{}
		for _, part := range parts {
			conds = append(conds, "(word_ru LIKE ? OR word_en LIKE ? OR word_fr LIKE ?)")
			pat := "%" + part + "%"
			args = append(args, pat, pat, pat)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error counting words in DB", "error", err)
		return nil, 0, fmt.Errorf("gormWordRepository.List: %w", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	var words []*model.Word
	result := q.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&words)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing words in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormWordRepository.List: %w", result.Error)
	}
	return words, total, nil
}

func (r *gormWordRepository) Exists(ctx context.Context, db *gorm.DB, wordID uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Word{}).Where("id = ?", wordID).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking word existence in DB", "error", err)
		return false, fmt.Errorf("gormWordRepository.Exists: %w", err)
	}
	return count > 0, nil
}
