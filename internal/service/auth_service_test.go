package service

import (
	"context"
	"testing"

	"github.com/ArmanAleqyan/langtrio/internal/config"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthServiceForTest(db *gorm.DB) AuthService {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.TTLHours = 1
	return NewAuthService(db, repository.NewGormUserRepository(), repository.NewGormTokenRepository(), cfg)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAuthServiceForTest(db)

	seedUser(t, db, "admin@example.com", "secret-pass", model.RoleAdmin)
	seedUser(t, db, "viewer@example.com", "secret-pass", 5)

	tests := []struct {
		name        string
		email       string
		password    string
		wantErr     error
		wantMessage string
	}{
		{
			name:     "admin logs in",
			email:    "admin@example.com",
			password: "secret-pass",
		},
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			password:    "secret-pass",
			wantErr:     model.ErrUnauthorized,
			wantMessage: "Wrong Email",
		},
		{
			name:        "wrong password",
			email:       "admin@example.com",
			password:    "bad-pass",
			wantErr:     model.ErrWrongCredentials,
			wantMessage: "Wrong Email Or Password",
		},
		{
			name:        "role outside admin and moderator",
			email:       "viewer@example.com",
			password:    "secret-pass",
			wantErr:     model.ErrUnauthorized,
			wantMessage: "Wrong Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := svc.Login(ctx, &model.LoginRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantMessage, appErr.Message)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.email, user.Email)

			var count int64
			require.NoError(t, db.Model(&model.AccessToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
			assert.EqualValues(t, 1, count)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAuthServiceForTest(db)

	seedUser(t, db, "mod@example.com", "secret-pass", model.RoleModerator)
	_, token, err := svc.Login(ctx, &model.LoginRequest{Email: "mod@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "mod@example.com", user.Email)

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestAuthService_LogoutRevokesAllTokens(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAuthServiceForTest(db)

	user := seedUser(t, db, "mod@example.com", "secret-pass", model.RoleModerator)

	_, first, err := svc.Login(ctx, &model.LoginRequest{Email: "mod@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	_, second, err := svc.Login(ctx, &model.LoginRequest{Email: "mod@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	// Both tokens still verify cryptographically but their jti rows are gone.
	_, err = svc.Authenticate(ctx, first)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
	_, err = svc.Authenticate(ctx, second)
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
