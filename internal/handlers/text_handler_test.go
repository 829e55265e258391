package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"
	"github.com/ArmanAleqyan/langtrio/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTextHandlerForTest(t *testing.T, db *gorm.DB) *TextHandler {
	t.Helper()
	files := newTestFileStore(t)
	svc := service.NewTextService(db,
		repository.NewGormTextRepository(),
		repository.NewGormWordRepository(),
		repository.NewGormCategoryRepository(),
		repository.NewGormLevelRepository(),
		files,
	)
	return NewTextHandler(svc, nil, 32<<20)
}

func withPrincipal(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), model.PrincipalKey, user))
}

func TestTextHandler_AddTexts_ReturnsTextID(t *testing.T) {
	db := setupTestDB(t)
	handler := newTextHandlerForTest(t, db)

	user := seedUser(t, db, "mod@example.com", "pass", model.RoleModerator)
	category := &model.Category{NameRu: "к", NameEn: "c", NameFr: "c", Photo: "c.jpg"}
	require.NoError(t, db.Create(category).Error)
	level := &model.Level{Name: "B1"}
	require.NoError(t, db.Create(level).Error)

	body, contentType := multipartBody(t, map[string]string{
		"category_id": "1",
		"levels_id":   "1",
		"title_ru":    "Заголовок", "title_en": "Title", "title_fr": "Titre",
		"text_ru": "т", "text_en": "t", "text_fr": "t",
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/admin/add_texts", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.AddTexts(rec, withPrincipal(req, user))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		TextID  uint   `json:"text_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "Text Created", resp.Message)
	require.NotZero(t, resp.TextID, "caller needs the new id to attach words")

	var text model.Text
	require.NoError(t, db.First(&text, resp.TextID).Error)
	assert.Equal(t, "Title", text.TitleEn)
	assert.Equal(t, user.ID, text.UserID)
}
