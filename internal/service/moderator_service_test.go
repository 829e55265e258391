package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestModeratorService_CreateModerator(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewModeratorService(db, repository.NewGormUserRepository())

	req := &model.CreateModeratorRequest{Email: "mod@example.com", Name: "Mod", Password: "password123"}
	require.NoError(t, svc.CreateModerator(ctx, req))

	var user model.User
	require.NoError(t, db.Where("email = ?", "mod@example.com").First(&user).Error)
	assert.Equal(t, model.RoleModerator, user.RoleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	err := svc.CreateModerator(ctx, req)
	require.Error(t, err)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "email", appErr.Field)
	assert.Equal(t, "The email has already been taken.", appErr.Message)
}

func TestModeratorService_UpdateModerator(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewModeratorService(db, repository.NewGormUserRepository())

	first := seedUser(t, db, "one@example.com", "password123", model.RoleModerator)
	seedUser(t, db, "two@example.com", "password123", model.RoleModerator)

	t.Run("keeping own email is not a duplicate", func(t *testing.T) {
		err := svc.UpdateModerator(ctx, &model.UpdateModeratorRequest{
			UserID: first.ID, Email: "one@example.com", Name: "Renamed",
		})
		require.NoError(t, err)

		var user model.User
		require.NoError(t, db.First(&user, first.ID).Error)
		assert.Equal(t, "Renamed", user.Name)
	})

	t.Run("taking another account's email fails", func(t *testing.T) {
		err := svc.UpdateModerator(ctx, &model.UpdateModeratorRequest{
			UserID: first.ID, Email: "two@example.com", Name: "Renamed",
		})
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "email", appErr.Field)
	})

	t.Run("unknown user id", func(t *testing.T) {
		err := svc.UpdateModerator(ctx, &model.UpdateModeratorRequest{
			UserID: 999, Email: "new@example.com", Name: "Ghost",
		})
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "user_id", appErr.Field)
	})

	t.Run("password is rehashed only when provided", func(t *testing.T) {
		err := svc.UpdateModerator(ctx, &model.UpdateModeratorRequest{
			UserID: first.ID, Email: "one@example.com", Name: "Renamed", Password: "newpassword1",
		})
		require.NoError(t, err)

		var user model.User
		require.NoError(t, db.First(&user, first.ID).Error)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword1")))
	})
}

func TestModeratorService_GetModerator(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewModeratorService(db, repository.NewGormUserRepository())

	user := seedUser(t, db, "mod@example.com", "password123", model.RoleModerator)

	got, err := svc.GetModerator(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetModerator(ctx, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Not Found Moderator", appErr.Message)
}

func TestModeratorService_ListModerators(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewModeratorService(db, repository.NewGormUserRepository())

	seedUser(t, db, "admin@example.com", "password123", model.RoleAdmin)
	for i := 0; i < 12; i++ {
		seedUser(t, db, fmt.Sprintf("mod%d@example.com", i), "password123", model.RoleModerator)
	}

	page, err := svc.ListModerators(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 12, page.Total)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 10, page.PerPage)

	page2, err := svc.ListModerators(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Items, 2)
}
