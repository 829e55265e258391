package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PromoCodeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, code *model.PromoCode) error
	FindByID(ctx context.Context, db *gorm.DB, codeID uint) (*model.PromoCode, error)
	Update(ctx context.Context, tx *gorm.DB, codeID uint, updates map[string]interface{}) error
	List(ctx context.Context, db *gorm.DB, search string, page, perPage int) ([]*model.PromoCode, int64, error)
	Exists(ctx context.Context, db *gorm.DB, codeID uint) (bool, error)
	CodeExists(ctx context.Context, db *gorm.DB, code string, excludeCodeID *uint) (bool, error)
}

type gormPromoCodeRepository struct{}

func NewGormPromoCodeRepository() PromoCodeRepository {
	return &gormPromoCodeRepository{}
}

func (r *gormPromoCodeRepository) Create(ctx context.Context, tx *gorm.DB, code *model.PromoCode) error {
	result := tx.WithContext(ctx).Create(code)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return model.ErrConflict
		}
		middleware.GetLogger(ctx).Error("Error creating promo code in DB", "error", result.Error)
		return fmt.Errorf("gormPromoCodeRepository.Create: %w", result.Error)
	}
	return nil
}

// FindByID preloads the owning agent for the single-page payload.
func (r *gormPromoCodeRepository) FindByID(ctx context.Context, db *gorm.DB, codeID uint) (*model.PromoCode, error) {
	var code model.PromoCode
	result := db.WithContext(ctx).Preload("Agent").First(&code, codeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding promo code by ID in DB", "error", result.Error, "code_id", codeID)
		return nil, fmt.Errorf("gormPromoCodeRepository.FindByID: %w", result.Error)
	}
	return &code, nil
}

func (r *gormPromoCodeRepository) Update(ctx context.Context, tx *gorm.DB, codeID uint, updates map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(&model.PromoCode{}).Where("id = ?", codeID).Updates(updates)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return model.ErrConflict
		}
		middleware.GetLogger(ctx).Error("Error updating promo code in DB", "error", result.Error, "code_id", codeID)
		return fmt.Errorf("gormPromoCodeRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPromoCodeRepository) List(ctx context.Context, db *gorm.DB, search string, page, perPage int) ([]*model.PromoCode, int64, error) {
	q := db.WithContext(ctx).Model(&model.PromoCode{})

	if parts := strings.Fields(search); len(parts) > 0 {
		var conds []string
		var args []interface{}
		for _, part := range parts {
			conds = append(conds, "code LIKE ?")
			args = append(args, "%"+part+"%")
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error counting promo codes in DB", "error", err)
		return nil, 0, fmt.Errorf("gormPromoCodeRepository.List: %w", err)
	}

	var codes []*model.PromoCode
	result := q.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&codes)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing promo codes in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormPromoCodeRepository.List: %w", result.Error)
	}
	return codes, total, nil
}

func (r *gormPromoCodeRepository) Exists(ctx context.Context, db *gorm.DB, codeID uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.PromoCode{}).Where("id = ?", codeID).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking promo code existence in DB", "error", err)
		return false, fmt.Errorf("gormPromoCodeRepository.Exists: %w", err)
	}
	return count > 0, nil
}

// CodeExists backs the uniqueness rule; the updated row excludes itself so
// resubmitting an unchanged code is not a violation.
func (r *gormPromoCodeRepository) CodeExists(ctx context.Context, db *gorm.DB, code string, excludeCodeID *uint) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&model.PromoCode{}).Where("code = ?", code)
	if excludeCodeID != nil {
		query = query.Where("id != ?", *excludeCodeID)
	}
	if err := query.Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking promo code uniqueness in DB", "error", err)
		return false, fmt.Errorf("gormPromoCodeRepository.CodeExists: %w", err)
	}
	return count > 0, nil
}
