package service

import (
	"context"
	"errors"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const moderatorsPerPage = 10

type ModeratorService interface {
	CreateModerator(ctx context.Context, req *model.CreateModeratorRequest) error
	UpdateModerator(ctx context.Context, req *model.UpdateModeratorRequest) error
	GetModerator(ctx context.Context, userID uint) (*model.User, error)
	ListModerators(ctx context.Context, page int) (*model.Page, error)
}

type moderatorService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewModeratorService(db *gorm.DB, userRepo repository.UserRepository) ModeratorService {
	return &moderatorService{db: db, userRepo: userRepo}
}

func (s *moderatorService) CreateModerator(ctx context.Context, req *model.CreateModeratorRequest) error {
	logger := middleware.GetLogger(ctx)

	taken, err := s.userRepo.EmailExists(ctx, s.db, req.Email, nil)
	if err != nil {
		return model.ErrInternalServer
	}
	if taken {
		return model.NewAppError("DUPLICATE_EMAIL", "The email has already been taken.", "email", model.ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return model.ErrInternalServer
	}

	user := &model.User{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		RoleID:   model.RoleModerator,
	}
	if err := s.userRepo.Create(ctx, s.db, user); err != nil {
		// Unique index race: report it like the declarative rule would.
		if errors.Is(err, model.ErrConflict) {
			return model.NewAppError("DUPLICATE_EMAIL", "The email has already been taken.", "email", model.ErrInvalidInput)
		}
		return model.ErrInternalServer
	}

	logger.Info("Moderator created", "user_id", user.ID)
	return nil
}

func (s *moderatorService) UpdateModerator(ctx context.Context, req *model.UpdateModeratorRequest) error {
	logger := middleware.GetLogger(ctx)

	exists, err := s.userRepo.Exists(ctx, s.db, req.UserID)
	if err != nil {
		return model.ErrInternalServer
	}
	if !exists {
		return model.NewAppError("INVALID_USER", "The selected user_id is invalid.", "user_id", model.ErrInvalidInput)
	}

	taken, err := s.userRepo.EmailExists(ctx, s.db, req.Email, &req.UserID)
	if err != nil {
		return model.ErrInternalServer
	}
	if taken {
		return model.NewAppError("DUPLICATE_EMAIL", "The email has already been taken.", "email", model.ErrInvalidInput)
	}

	updates := map[string]interface{}{
		"email": req.Email,
		"name":  req.Name,
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.ErrInternalServer
		}
		updates["password"] = string(hashed)
	}

	if err := s.userRepo.Update(ctx, s.db, req.UserID, updates); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INVALID_USER", "The selected user_id is invalid.", "user_id", model.ErrInvalidInput)
		}
		return model.ErrInternalServer
	}
	return nil
}

func (s *moderatorService) GetModerator(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Not Found Moderator", "", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	return user, nil
}

func (s *moderatorService) ListModerators(ctx context.Context, page int) (*model.Page, error) {
	if page < 1 {
		page = 1
	}
	users, total, err := s.userRepo.ListByRole(ctx, s.db, model.RoleModerator, page, moderatorsPerPage)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if users == nil {
		users = []*model.User{}
	}
	return &model.Page{Items: users, Page: page, PerPage: moderatorsPerPage, Total: total}, nil
}
