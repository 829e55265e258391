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

const wordsPerPage = 20

type WordService interface {
	CreateWord(ctx context.Context, req *model.CreateWordRequest) error
	UpdateWord(ctx context.Context, req *model.UpdateWordRequest) error
	ListWords(ctx context.Context, f model.WordFilter) (*model.Page, error)
	DeleteWord(ctx context.Context, wordID uint) error
}

type wordService struct {
	db           *gorm.DB
	wordRepo     repository.WordRepository
	textRepo     repository.TextRepository
	categoryRepo repository.CategoryRepository
	levelRepo    repository.LevelRepository
	files        *storage.FileStore
}

func NewWordService(db *gorm.DB, wordRepo repository.WordRepository, textRepo repository.TextRepository, categoryRepo repository.CategoryRepository, levelRepo repository.LevelRepository, files *storage.FileStore) WordService {
	return &wordService{
		db:           db,
		wordRepo:     wordRepo,
		textRepo:     textRepo,
		categoryRepo: categoryRepo,
		levelRepo:    levelRepo,
		files:        files,
	}
}

func (s *wordService) checkRefs(ctx context.Context, categoryID, levelsID, textID uint) error {
	exists, err := s.categoryRepo.Exists(ctx, s.db, categoryID)
	if err != nil {
		return model.ErrInternalServer
	}
	if !exists {
		return model.NewAppError("INVALID_CATEGORY", "The selected category_id is invalid.", "category_id", model.ErrInvalidInput)
	}

	exists, err = s.levelRepo.Exists(ctx, s.db, levelsID)
	if err != nil {
		return model.ErrInternalServer
	}
	if !exists {
		return model.NewAppError("INVALID_LEVEL", "The selected levels_id is invalid.", "levels_id", model.ErrInvalidInput)
	}

	exists, err = s.textRepo.Exists(ctx, s.db, textID)
	if err != nil {
		return model.ErrInternalServer
	}
	if !exists {
		return model.NewAppError("INVALID_TEXT", "The selected text_id is invalid.", "text_id", model.ErrInvalidInput)
	}
	return nil
}

func (s *wordService) CreateWord(ctx context.Context, req *model.CreateWordRequest) error {
	logger := middleware.GetLogger(ctx)

	if err := s.checkRefs(ctx, req.CategoryID, req.LevelsID, req.TextID); err != nil {
		return err
	}

	var saved []string
	cleanup := func() { s.files.RemoveAll(saved...) }

	photo, err := saveAsset(s.files, req.Photo, storage.KindImage, "photo", "", &saved)
	if err != nil {
		cleanup()
		return err
	}
	audioRu, err := saveAsset(s.files, req.AudioRu, storage.KindAudio, "audio_ru", "", &saved)
	if err != nil {
		cleanup()
		return err
	}
	audioEn, err := saveAsset(s.files, req.AudioEn, storage.KindAudio, "audio_en", "", &saved)
	if err != nil {
		cleanup()
		return err
	}
	audioFr, err := saveAsset(s.files, req.AudioFr, storage.KindAudio, "audio_fr", "", &saved)
	if err != nil {
		cleanup()
		return err
	}

	word := &model.Word{
		CategoryID: req.CategoryID,
		LevelsID:   req.LevelsID,
		TextID:     req.TextID,
		WordRu:     req.WordRu,
		WordEn:     req.WordEn,
		WordFr:     req.WordFr,
		AudioRu:    audioRu,
		AudioEn:    audioEn,
		AudioFr:    audioFr,
		Photo:      photo,
	}
	if err := s.wordRepo.Create(ctx, s.db, word); err != nil {
		cleanup()
		return model.ErrInternalServer
	}

	logger.Info("Word created", "word_id", word.ID, "text_id", word.TextID)
	return nil
}

func (s *wordService) UpdateWord(ctx context.Context, req *model.UpdateWordRequest) error {
	existing, err := s.wordRepo.FindByID(ctx, s.db, req.WordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INVALID_WORD", "The selected word_id is invalid.", "word_id", model.ErrInvalidInput)
		}
		return model.ErrInternalServer
	}

	if err := s.checkRefs(ctx, req.CategoryID, req.LevelsID, req.TextID); err != nil {
		return err
	}

	var saved, superseded []string
	cleanup := func() { s.files.RemoveAll(saved...) }
	supersede := func(old string) {
		if old != "" {
			superseded = append(superseded, old)
		}
	}

	photo, err := saveAsset(s.files, req.Photo, storage.KindImage, "photo", existing.Photo, &saved)
	if err != nil {
		cleanup()
		return err
	}
	if req.Photo != nil {
		supersede(existing.Photo)
	}
	audioRu, err := saveAsset(s.files, req.AudioRu, storage.KindAudio, "audio_ru", existing.AudioRu, &saved)
	if err != nil {
		cleanup()
		return err
	}
	if req.AudioRu != nil {
		supersede(existing.AudioRu)
	}
	audioEn, err := saveAsset(s.files, req.AudioEn, storage.KindAudio, "audio_en", existing.AudioEn, &saved)
	if err != nil {
		cleanup()
		return err
	}
	if req.AudioEn != nil {
		supersede(existing.AudioEn)
	}
	audioFr, err := saveAsset(s.files, req.AudioFr, storage.KindAudio, "audio_fr", existing.AudioFr, &saved)
	if err != nil {
		cleanup()
		return err
	}
	if req.AudioFr != nil {
		supersede(existing.AudioFr)
	}

	updates := map[string]interface{}{
		"category_id": req.CategoryID,
		"levels_id":   req.LevelsID,
		"text_id":     req.TextID,
		"word_ru":     req.WordRu,
		"word_en":     req.WordEn,
		"word_fr":     req.WordFr,
		"audio_ru":    audioRu,
		"audio_en":    audioEn,
		"audio_fr":    audioFr,
		"photo":       photo,
	}
	if err := s.wordRepo.Update(ctx, s.db, req.WordID, updates); err != nil {
		cleanup()
		return model.ErrInternalServer
	}

	s.files.RemoveAll(superseded...)
	return nil
}

func (s *wordService) ListWords(ctx context.Context, f model.WordFilter) (*model.Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	words, total, err := s.wordRepo.List(ctx, s.db, f, wordsPerPage)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if words == nil {
		words = []*model.Word{}
	}
	return &model.Page{Items: words, Page: f.Page, PerPage: wordsPerPage, Total: total}, nil
}

// DeleteWord drops the row first, then unlinks whatever assets it held.
func (s *wordService) DeleteWord(ctx context.Context, wordID uint) error {
	logger := middleware.GetLogger(ctx)

	existing, err := s.wordRepo.FindByID(ctx, s.db, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "404 word", "", model.ErrNotFound)
		}
		return model.ErrInternalServer
	}

	if err := s.wordRepo.Delete(ctx, s.db, wordID); err != nil {
		return model.ErrInternalServer
	}

	s.files.RemoveAll(existing.Photo, existing.AudioRu, existing.AudioEn, existing.AudioFr)
	logger.Info("Word deleted", "word_id", wordID)
	return nil
}
