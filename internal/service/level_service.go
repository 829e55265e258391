package service

import (
	"context"
	"errors"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"

	"gorm.io/gorm"
)

type LevelService interface {
	CreateLevel(ctx context.Context, req *model.CreateLevelRequest) error
	UpdateLevel(ctx context.Context, req *model.UpdateLevelRequest) error
	GetLevel(ctx context.Context, levelID uint) (*model.Level, error)
	ListLevels(ctx context.Context) ([]*model.Level, error)
}

type levelService struct {
	db        *gorm.DB
	levelRepo repository.LevelRepository
}

func NewLevelService(db *gorm.DB, levelRepo repository.LevelRepository) LevelService {
	return &levelService{db: db, levelRepo: levelRepo}
}

func (s *levelService) CreateLevel(ctx context.Context, req *model.CreateLevelRequest) error {
	if err := s.levelRepo.Create(ctx, s.db, &model.Level{Name: req.Name}); err != nil {
		return model.ErrInternalServer
	}
	return nil
}

func (s *levelService) UpdateLevel(ctx context.Context, req *model.UpdateLevelRequest) error {
	exists, err := s.levelRepo.Exists(ctx, s.db, req.LevelID)
	if err != nil {
		return model.ErrInternalServer
	}
	if !exists {
		return model.NewAppError("INVALID_LEVEL", "The selected level_id is invalid.", "level_id", model.ErrInvalidInput)
	}
	if err := s.levelRepo.Update(ctx, s.db, req.LevelID, req.Name); err != nil {
		return model.ErrInternalServer
	}
	return nil
}

func (s *levelService) GetLevel(ctx context.Context, levelID uint) (*model.Level, error) {
	level, err := s.levelRepo.FindByID(ctx, s.db, levelID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Not Found this level_id", "", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	return level, nil
}

func (s *levelService) ListLevels(ctx context.Context) ([]*model.Level, error) {
	levels, err := s.levelRepo.FindAll(ctx, s.db)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if levels == nil {
		levels = []*model.Level{}
	}
	return levels, nil
}
