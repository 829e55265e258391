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

type TextRepository interface {
	Create(ctx context.Context, tx *gorm.DB, text *model.Text) error
	FindByID(ctx context.Context, db *gorm.DB, textID uint) (*model.Text, error)
	Update(ctx context.Context, tx *gorm.DB, textID uint, updates map[string]interface{}) error
	List(ctx context.Context, db *gorm.DB, f model.TextFilter, perPage int) ([]*model.Text, int64, error)
	Exists(ctx context.Context, db *gorm.DB, textID uint) (bool, error)
}

type gormTextRepository struct{}

func NewGormTextRepository() TextRepository {
	return &gormTextRepository{}
}

func (r *gormTextRepository) Create(ctx context.Context, tx *gorm.DB, text *model.Text) error {
	result := tx.WithContext(ctx).Create(text)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating text in DB", "error", result.Error)
		return fmt.Errorf("gormTextRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormTextRepository) FindByID(ctx context.Context, db *gorm.DB, textID uint) (*model.Text, error) {
	var text model.Text
	result := db.WithContext(ctx).First(&text, textID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding text by ID in DB", "error", result.Error, "text_id", textID)
		return nil, fmt.Errorf("gormTextRepository.FindByID: %w", result.Error)
	}
	return &text, nil
}

func (r *gormTextRepository) Update(ctx context.Context, tx *gorm.DB, textID uint, updates map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(&model.Text{}).Where("id = ?", textID).Updates(updates)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating text in DB", "error", result.Error, "text_id", textID)
		return fmt.Errorf("gormTextRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// List applies the exact-match filters AND-combined, then the search tokens
// as one OR group over the localized titles. Tokens widen the match set;
// that union semantics is deliberate.
func (r *gormTextRepository) List(ctx context.Context, db *gorm.DB, f model.TextFilter, perPage int) ([]*model.Text, int64, error) {
	q := db.WithContext(ctx).Model(&model.Text{})

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.LevelID != nil {
		q = q.Where("levels_id = ?", *f.LevelID)
	}
	if parts := strings.Fields(f.Search); len(parts) > 0 {
		var conds []string
		var args []interface{}
		for _, part := range parts {
			conds = append(conds, "(title_ru LIKE ? OR title_en LIKE ? OR title_fr LIKE ?)")
			pat := "%" + part + "%"
			args = append(args, pat, pat, pat)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error counting texts in DB", "error", err)
		return nil, 0, fmt.Errorf("gormTextRepository.List: %w", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	var texts []*model.Text
	result := q.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&texts)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing texts in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormTextRepository.List: %w", result.Error)
	}
	return texts, total, nil
}

func (r *gormTextRepository) Exists(ctx context.Context, db *gorm.DB, textID uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Text{}).Where("id = ?", textID).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking text existence in DB", "error", err)
		return false, fmt.Errorf("gormTextRepository.Exists: %w", err)
	}
	return count > 0, nil
}
