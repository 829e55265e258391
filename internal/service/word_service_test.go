package service

import (
	"context"
	"os"
	"testing"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"
	"github.com/ArmanAleqyan/langtrio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWordServiceForTest(t *testing.T, db *gorm.DB) (WordService, *storage.FileStore) {
	files := newTestFileStore(t)
	svc := NewWordService(db,
		repository.NewGormWordRepository(),
		repository.NewGormTextRepository(),
		repository.NewGormCategoryRepository(),
		repository.NewGormLevelRepository(),
		files,
	)
	return svc, files
}

func TestWordService_CreateWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, files := newWordServiceForTest(t, db)

	category := seedCategory(t, db, "c.jpg")
	level := seedLevel(t, db, "A2")
	text := seedText(t, db, category.ID, level.ID, 1, "Host text")

	req := &model.CreateWordRequest{
		CategoryID: category.ID, LevelsID: level.ID, TextID: text.ID,
		WordRu: "дом", WordEn: "house", WordFr: "maison",
		Photo:   makeUpload(t, "house.jpg", "img"),
		AudioFr: makeUpload(t, "maison.mp3", "audio"),
	}
	require.NoError(t, svc.CreateWord(ctx, req))

	var word model.Word
	require.NoError(t, db.Where("word_en = ?", "house").First(&word).Error)
	assert.NotEmpty(t, word.Photo)
	assert.NotEmpty(t, word.AudioFr)
	assert.Empty(t, word.AudioEn)

	_, err := os.Stat(files.Path(word.Photo))
	assert.NoError(t, err)
}

func TestWordService_CreateWord_InvalidRefs(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _ := newWordServiceForTest(t, db)

	category := seedCategory(t, db, "c.jpg")
	level := seedLevel(t, db, "A2")
	text := seedText(t, db, category.ID, level.ID, 1, "Host text")

	tests := []struct {
		name      string
		req       *model.CreateWordRequest
		wantField string
	}{
		{
			name: "unknown category",
			req: &model.CreateWordRequest{
				CategoryID: 999, LevelsID: level.ID, TextID: text.ID,
				WordRu: "x", WordEn: "x", WordFr: "x",
			},
			wantField: "category_id",
		},
		{
			name: "unknown level",
			req: &model.CreateWordRequest{
				CategoryID: category.ID, LevelsID: 999, TextID: text.ID,
				WordRu: "x", WordEn: "x", WordFr: "x",
			},
			wantField: "levels_id",
		},
		{
			name: "unknown text",
			req: &model.CreateWordRequest{
				CategoryID: category.ID, LevelsID: level.ID, TextID: 999,
				WordRu: "x", WordEn: "x", WordFr: "x",
			},
			wantField: "text_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateWord(ctx, tt.req)
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantField, appErr.Field)
		})
	}
}

func TestWordService_UpdateWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, files := newWordServiceForTest(t, db)

	category := seedCategory(t, db, "c.jpg")
	level := seedLevel(t, db, "A2")
	text := seedText(t, db, category.ID, level.ID, 1, "Host text")

	require.NoError(t, svc.CreateWord(ctx, &model.CreateWordRequest{
		CategoryID: category.ID, LevelsID: level.ID, TextID: text.ID,
		WordRu: "кот", WordEn: "cat", WordFr: "chat",
		Photo: makeUpload(t, "cat.jpg", "img"),
	}))
	var word model.Word
	require.NoError(t, db.Where("word_en = ?", "cat").First(&word).Error)
	oldPhoto := word.Photo

	t.Run("omitted photo is retained", func(t *testing.T) {
		err := svc.UpdateWord(ctx, &model.UpdateWordRequest{
			WordID:     word.ID,
			CategoryID: category.ID, LevelsID: level.ID, TextID: text.ID,
			WordRu: "кот", WordEn: "kitten", WordFr: "chaton",
		})
		require.NoError(t, err)

		var updated model.Word
		require.NoError(t, db.First(&updated, word.ID).Error)
		assert.Equal(t, oldPhoto, updated.Photo)
		assert.Equal(t, "kitten", updated.WordEn)
	})

	t.Run("new photo replaces the old file on disk", func(t *testing.T) {
		err := svc.UpdateWord(ctx, &model.UpdateWordRequest{
			WordID:     word.ID,
			CategoryID: category.ID, LevelsID: level.ID, TextID: text.ID,
			WordRu: "кот", WordEn: "kitten", WordFr: "chaton",
			Photo: makeUpload(t, "kitten.png", "img2"),
		})
		require.NoError(t, err)

		var updated model.Word
		require.NoError(t, db.First(&updated, word.ID).Error)
		assert.NotEqual(t, oldPhoto, updated.Photo)

		_, statErr := os.Stat(files.Path(oldPhoto))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("unknown word id", func(t *testing.T) {
		err := svc.UpdateWord(ctx, &model.UpdateWordRequest{
			WordID:     999,
			CategoryID: category.ID, LevelsID: level.ID, TextID: text.ID,
			WordRu: "x", WordEn: "x", WordFr: "x",
		})
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "word_id", appErr.Field)
	})
}

func TestWordService_DeleteWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, files := newWordServiceForTest(t, db)

	category := seedCategory(t, db, "c.jpg")
	level := seedLevel(t, db, "A2")
	text := seedText(t, db, category.ID, level.ID, 1, "Host text")

	require.NoError(t, svc.CreateWord(ctx, &model.CreateWordRequest{
		CategoryID: category.ID, LevelsID: level.ID, TextID: text.ID,
		WordRu: "река", WordEn: "river", WordFr: "rivière",
		Photo:   makeUpload(t, "river.jpg", "img"),
		AudioRu: makeUpload(t, "reka.mp3", "audio"),
	}))
	var word model.Word
	require.NoError(t, db.Where("word_en = ?", "river").First(&word).Error)

	require.NoError(t, svc.DeleteWord(ctx, word.ID))

	var count int64
	require.NoError(t, db.Model(&model.Word{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err := os.Stat(files.Path(word.Photo))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(files.Path(word.AudioRu))
	assert.True(t, os.IsNotExist(err))

	err = svc.DeleteWord(ctx, word.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestWordService_ListWords(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, _ := newWordServiceForTest(t, db)

	category := seedCategory(t, db, "c.jpg")
	level := seedLevel(t, db, "A2")
	textA := seedText(t, db, category.ID, level.ID, 1, "Text A")
	textB := seedText(t, db, category.ID, level.ID, 1, "Text B")

	for _, w := range []struct {
		textID uint
		en     string
	}{
		{textA.ID, "red"},
		{textA.ID, "green"},
		{textB.ID, "car"},
	} {
		require.NoError(t, db.Create(&model.Word{
			CategoryID: category.ID, LevelsID: level.ID, TextID: w.textID,
			WordRu: w.en, WordEn: w.en, WordFr: w.en,
		}).Error)
	}

	t.Run("filter by text", func(t *testing.T) {
		page, err := svc.ListWords(ctx, model.WordFilter{TextID: &textA.ID, Page: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
		assert.Equal(t, 20, page.PerPage)
	})

	t.Run("search tokens widen the match", func(t *testing.T) {
		page, err := svc.ListWords(ctx, model.WordFilter{Search: "red car", Page: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
	})
}
