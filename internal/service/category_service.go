package service

import (
	"context"
	"errors"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"
	"github.com/ArmanAleqyan/langtrio/internal/storage"

	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) error
	UpdateCategory(ctx context.Context, req *model.UpdateCategoryRequest) error
	GetCategory(ctx context.Context, categoryID uint) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID uint) error
}

type categoryService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	files        *storage.FileStore
}

func NewCategoryService(db *gorm.DB, categoryRepo repository.CategoryRepository, files *storage.FileStore) CategoryService {
	return &categoryService{db: db, categoryRepo: categoryRepo, files: files}
}

// CreateCategory writes the photo first and only then commits the row; a
// failed insert removes the freshly written file so no orphan stays behind.
func (s *categoryService) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) error {
	logger := middleware.GetLogger(ctx)

	photo, err := s.files.Save(req.Photo, storage.KindImage)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			return model.NewAppError("INVALID_FILE", "The photo must be a file of type: jpeg, png, jpg, gif, webp.", "photo", model.ErrInvalidInput)
		}
		logger.Error("Error storing category photo", "error", err)
		return model.ErrInternalServer
	}

	category := &model.Category{
		Photo:  photo,
		NameRu: req.NameRu,
		NameEn: req.NameEn,
		NameFr: req.NameFr,
	}
	if err := s.categoryRepo.Create(ctx, s.db, category); err != nil {
		s.files.Remove(photo)
		return model.ErrInternalServer
	}

	logger.Info("Category created", "category_id", category.ID)
	return nil
}

// UpdateCategory retains the stored photo when none is supplied; a new photo
// replaces the name in the row and the superseded file is removed after the
// update commits.
func (s *categoryService) UpdateCategory(ctx context.Context, req *model.UpdateCategoryRequest) error {
	logger := middleware.GetLogger(ctx)

	existing, err := s.categoryRepo.FindByID(ctx, s.db, req.CategoryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INVALID_CATEGORY", "The selected category_id is invalid.", "category_id", model.ErrInvalidInput)
		}
		return model.ErrInternalServer
	}

	photo := existing.Photo
	replaced := false
	if req.Photo != nil {
		photo, err = s.files.Save(req.Photo, storage.KindImage)
		if err != nil {
			if errors.Is(err, model.ErrInvalidInput) {
				return model.NewAppError("INVALID_FILE", "The photo must be a file of type: jpeg, png, jpg, gif, webp.", "photo", model.ErrInvalidInput)
			}
			logger.Error("Error storing category photo", "error", err)
			return model.ErrInternalServer
		}
		replaced = true
	}

	updates := map[string]interface{}{
		"photo":   photo,
		"name_ru": req.NameRu,
		"name_en": req.NameEn,
		"name_fr": req.NameFr,
	}
	if err := s.categoryRepo.Update(ctx, s.db, req.CategoryID, updates); err != nil {
		if replaced {
			s.files.Remove(photo)
		}
		return model.ErrInternalServer
	}

	if replaced && existing.Photo != "" {
		s.files.Remove(existing.Photo)
	}
	return nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "404 Not Found category_id", "", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if categories == nil {
		categories = []*model.Category{}
	}
	return categories, nil
}

// DeleteCategory removes the row first (texts and words cascade at the
// storage layer) and then best-effort unlinks the photo, so a disk failure
// can never leave a live row pointing at a half-deleted tree.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID uint) error {
	logger := middleware.GetLogger(ctx)

	existing, err := s.categoryRepo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INVALID_CATEGORY", "The selected category_id is invalid.", "category_id", model.ErrInvalidInput)
		}
		return model.ErrInternalServer
	}

	if err := s.categoryRepo.Delete(ctx, s.db, categoryID); err != nil {
		return model.ErrInternalServer
	}

	s.files.Remove(existing.Photo)
	logger.Info("Category deleted", "category_id", categoryID)
	return nil
}
