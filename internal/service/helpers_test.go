package service

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/storage"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

// setupTestDB opens an isolated in-memory database. The pool is pinned to one
// connection so the memory database survives across queries.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.Agent{},
		&model.PromoCode{},
		&model.Level{},
		&model.Category{},
		&model.Text{},
		&model.Word{},
	))
	return db
}

func newTestFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store
}

func makeUpload(t *testing.T, filename, content string) *model.Upload {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, header, err := req.FormFile("file")
	require.NoError(t, err)

	return &model.Upload{File: file, Header: header}
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, roleID int) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Email: email, Password: string(hashed), Name: "Test User", RoleID: roleID}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAgent(t *testing.T, db *gorm.DB) *model.Agent {
	t.Helper()
	agent := &model.Agent{Name: "Anna", Surname: "Petrova", Email: "anna@example.com", Phone: "+37400000000"}
	require.NoError(t, db.Create(agent).Error)
	return agent
}

func seedLevel(t *testing.T, db *gorm.DB, name string) *model.Level {
	t.Helper()
	level := &model.Level{Name: name}
	require.NoError(t, db.Create(level).Error)
	return level
}

func seedCategory(t *testing.T, db *gorm.DB, photo string) *model.Category {
	t.Helper()
	category := &model.Category{Photo: photo, NameRu: "Природа", NameEn: "Nature", NameFr: "Nature"}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedText(t *testing.T, db *gorm.DB, categoryID, levelsID, userID uint, titleEn string) *model.Text {
	t.Helper()
	text := &model.Text{
		CategoryID: categoryID,
		LevelsID:   levelsID,
		UserID:     userID,
		TitleRu:    titleEn + " ru",
		TitleEn:    titleEn,
		TitleFr:    titleEn + " fr",
		TextRu:     "текст",
		TextEn:     "text body",
		TextFr:     "texte",
	}
	require.NoError(t, db.Create(text).Error)
	return text
}

func futureDate() string {
	return time.Now().AddDate(0, 1, 0).Format("2006-01-02")
}
