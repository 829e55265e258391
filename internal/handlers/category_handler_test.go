package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"
	"github.com/ArmanAleqyan/langtrio/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryHandlerForTest(t *testing.T) *CategoryHandler {
	t.Helper()
	db := setupTestDB(t)
	files := newTestFileStore(t)
	svc := service.NewCategoryService(db, repository.NewGormCategoryRepository(), files)
	return NewCategoryHandler(svc, nil, 32<<20)
}

func TestCategoryHandler_CreateCategory_Validation(t *testing.T) {
	handler := newCategoryHandlerForTest(t)

	tests := []struct {
		name       string
		fields     map[string]string
		files      map[string]string
		wantStatus int
		wantFields []string
	}{
		{
			name:       "all fields missing",
			fields:     map[string]string{},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"name_ru", "name_en", "name_fr", "photo"},
		},
		{
			name:       "photo missing",
			fields:     map[string]string{"name_ru": "а", "name_en": "a", "name_fr": "a"},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"photo"},
		},
		{
			name:       "photo has a disallowed type",
			fields:     map[string]string{"name_ru": "а", "name_en": "a", "name_fr": "a"},
			files:      map[string]string{"photo": "script.exe"},
			wantStatus: http.StatusBadRequest,
			wantFields: []string{"photo"},
		},
		{
			name:       "valid request",
			fields:     map[string]string{"name_ru": "а", "name_en": "a", "name_fr": "a"},
			files:      map[string]string{"photo": "pic.jpg"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.fields, tt.files)
			req := httptest.NewRequest(http.MethodPost, "/admin/create_category", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			handler.CreateCategory(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, true, resp["status"])
				assert.Equal(t, "Created", resp["message"])
				return
			}

			message, ok := resp["message"].(map[string]interface{})
			require.True(t, ok, "expected a field error map, got %v", resp["message"])
			require.Len(t, message, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, message, field)
			}
		})
	}
}

func TestCategoryHandler_DeleteCategory_RequiresID(t *testing.T) {
	handler := newCategoryHandlerForTest(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/delete_category", nil)
	rec := httptest.NewRecorder()
	handler.DeleteCategory(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	message, ok := resp["message"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, message, "category_id")
}

func TestCategoryHandler_DeleteCategory_UnknownID(t *testing.T) {
	handler := newCategoryHandlerForTest(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/delete_category?category_id=999", nil)
	rec := httptest.NewRecorder()
	handler.DeleteCategory(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["status"])
}

func TestCategoryHandler_ListAfterCreate(t *testing.T) {
	handler := newCategoryHandlerForTest(t)

	body, contentType := multipartBody(t,
		map[string]string{"name_ru": "Природа", "name_en": "Nature", "name_fr": "Nature"},
		map[string]string{"photo": "nature.png"},
	)
	create := httptest.NewRequest(http.MethodPost, "/admin/create_category", body)
	create.Header.Set("Content-Type", contentType)
	createRec := httptest.NewRecorder()
	handler.CreateCategory(createRec, create)
	require.Equal(t, http.StatusOK, createRec.Code)

	list := httptest.NewRequest(http.MethodGet, "/admin/all_category", nil)
	listRec := httptest.NewRecorder()
	handler.AllCategory(listRec, list)
	require.Equal(t, http.StatusOK, listRec.Code)

	var resp struct {
		Status bool             `json:"status"`
		Data   []model.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Nature", resp.Data[0].NameEn)
	assert.NotEmpty(t, resp.Data[0].Photo)
}
