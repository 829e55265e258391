package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ArmanAleqyan/langtrio/internal/config"
	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error)
	Logout(ctx context.Context, userID uint) error
	Authenticate(ctx context.Context, tokenString string) (*model.User, error)
}

type authService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       *config.Config
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config) AuthService {
	return &authService{db: db, userRepo: userRepo, tokenRepo: tokenRepo, cfg: cfg}
}

// Login verifies the credentials of an admin or moderator and issues a
// bearer token. Unknown email or a non-admin role is a 401; a bad password
// on a known account is a 422, mirroring the legacy API contract.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, "", model.NewAppError("WRONG_EMAIL", "Wrong Email", "", model.ErrUnauthorized)
		}
		logger.Error("Error looking up user for login", "error", err)
		return nil, "", model.ErrInternalServer
	}
	if user.RoleID != model.RoleAdmin && user.RoleID != model.RoleModerator {
		return nil, "", model.NewAppError("WRONG_EMAIL", "Wrong Email", "", model.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", model.NewAppError("WRONG_CREDENTIALS", "Wrong Email Or Password", "", model.ErrWrongCredentials)
	}

	tokenString, jti, err := s.issueToken(user)
	if err != nil {
		logger.Error("Error signing access token", "error", err)
		return nil, "", model.ErrInternalServer
	}

	record := &model.AccessToken{JTI: jti, UserID: user.ID}
	if err := s.tokenRepo.Create(ctx, s.db, record); err != nil {
		logger.Error("Error persisting access token", "error", err)
		return nil, "", model.ErrInternalServer
	}

	logger.Info("User logged in", "user_id", user.ID, "role_id", user.RoleID)
	return user, tokenString, nil
}

// Logout revokes every outstanding token of the principal.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	if err := s.tokenRepo.DeleteByUser(ctx, s.db, userID); err != nil {
		middleware.GetLogger(ctx).Error("Error revoking tokens", "error", err, "user_id", userID)
		return model.ErrInternalServer
	}
	return nil
}

// Authenticate resolves a bearer token: the JWT must verify, its jti must
// still exist (logout deletes the row) and the user must still hold an
// admin or moderator role.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, model.NewAppError("INVALID_TOKEN", "Unauthenticated", "", model.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" || claims.Subject == "" {
		return nil, model.NewAppError("INVALID_TOKEN", "Unauthenticated", "", model.ErrUnauthorized)
	}

	exists, err := s.tokenRepo.Exists(ctx, s.db, claims.ID)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if !exists {
		return nil, model.NewAppError("REVOKED_TOKEN", "Unauthenticated", "", model.ErrUnauthorized)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, model.NewAppError("INVALID_TOKEN", "Unauthenticated", "", model.ErrUnauthorized)
	}
	user, err := s.userRepo.FindByID(ctx, s.db, uint(userID))
	if err != nil {
		return nil, model.NewAppError("INVALID_TOKEN", "Unauthenticated", "", model.ErrUnauthorized)
	}
	if user.RoleID != model.RoleAdmin && user.RoleID != model.RoleModerator {
		return nil, model.NewAppError("FORBIDDEN_ROLE", "Unauthenticated", "", model.ErrUnauthorized)
	}
	return user, nil
}

func (s *authService) issueToken(user *model.User) (string, string, error) {
	jti := uuid.New().String()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.TTLHours) * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}
