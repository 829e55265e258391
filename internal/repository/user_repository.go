package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uint) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	Update(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error
	ListByRole(ctx context.Context, db *gorm.DB, roleID, page, perPage int) ([]*model.User, int64, error)
	EmailExists(ctx context.Context, db *gorm.DB, email string, excludeUserID *uint) (bool, error)
	Exists(ctx context.Context, db *gorm.DB, userID uint) (bool, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(user)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation, lost races on the email index.
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB", "error", result.Error, "email", user.Email)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uint) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding user by ID in DB", "error", result.Error, "user_id", userID)
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding user by email in DB", "error", result.Error)
		return nil, fmt.Errorf("gormUserRepository.FindByEmail: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) Update(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating user in DB", "error", result.Error, "user_id", userID)
		return fmt.Errorf("gormUserRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) ListByRole(ctx context.Context, db *gorm.DB, roleID, page, perPage int) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	q := db.WithContext(ctx).Model(&model.User{}).Where("role_id = ?", roleID)
	if err := q.Count(&total).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error counting users in DB", "error", err)
		return nil, 0, fmt.Errorf("gormUserRepository.ListByRole: %w", err)
	}
	result := q.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&users)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing users in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormUserRepository.ListByRole: %w", result.Error)
	}
	return users, total, nil
}

func (r *gormUserRepository) EmailExists(ctx context.Context, db *gorm.DB, email string, excludeUserID *uint) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if excludeUserID != nil {
		query = query.Where("id != ?", *excludeUserID)
	}
	if err := query.Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking email existence in DB", "error", err)
		return false, fmt.Errorf("gormUserRepository.EmailExists: %w", err)
	}
	return count > 0, nil
}

func (r *gormUserRepository) Exists(ctx context.Context, db *gorm.DB, userID uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking user existence in DB", "error", err)
		return false, fmt.Errorf("gormUserRepository.Exists: %w", err)
	}
	return count > 0, nil
}
