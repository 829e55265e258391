package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"
	"github.com/ArmanAleqyan/langtrio/internal/storage"

	"gorm.io/gorm"
)

const textsPerPage = 15

type TextService interface {
	CreateText(ctx context.Context, userID uint, req *model.CreateTextRequest) (uint, error)
	UpdateText(ctx context.Context, userID uint, req *model.UpdateTextRequest) error
	GetText(ctx context.Context, textID uint) (*model.TextWithWords, error)
	ListTexts(ctx context.Context, f model.TextFilter) (*model.Page, error)
}

type textService struct {
	db           *gorm.DB
	textRepo     repository.TextRepository
	wordRepo     repository.WordRepository
	categoryRepo repository.CategoryRepository
	levelRepo    repository.LevelRepository
	files        *storage.FileStore
}

func NewTextService(db *gorm.DB, textRepo repository.TextRepository, wordRepo repository.WordRepository, categoryRepo repository.CategoryRepository, levelRepo repository.LevelRepository, files *storage.FileStore) TextService {
	return &textService{
		db:           db,
		textRepo:     textRepo,
		wordRepo:     wordRepo,
		categoryRepo: categoryRepo,
		levelRepo:    levelRepo,
		files:        files,
	}
}

// saveAsset stores one optional upload and records the name so the caller can
// roll the batch back if a later step fails. A nil upload keeps fallback.
func saveAsset(files *storage.FileStore, u *model.Upload, kind storage.Kind, field, fallback string, saved *[]string) (string, error) {
	if u == nil {
		return fallback, nil
	}
	name, err := files.Save(u, kind)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			msg := fmt.Sprintf("The %s must be a file of type: jpeg, png, jpg, gif, webp.", field)
			if kind == storage.KindAudio {
				msg = fmt.Sprintf("The %s must be a file of type: mp3, wav, mpga.", field)
			}
			return "", model.NewAppError("INVALID_FILE", msg, field, model.ErrInvalidInput)
		}
		return "", model.ErrInternalServer
	}
	*saved = append(*saved, name)
	return name, nil
}

func (s *textService) checkRefs(ctx context.Context, categoryID, levelsID uint) error {
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
	return nil
}

// CreateText validates the referenced category and level before any file is
// written, then stores the assets and commits the row. On insert failure
// every file written in this call is removed. Returns the new text id so the
// caller can attach words to it.
func (s *textService) CreateText(ctx context.Context, userID uint, req *model.CreateTextRequest) (uint, error) {
	logger := middleware.GetLogger(ctx)

	if err := s.checkRefs(ctx, req.CategoryID, req.LevelsID); err != nil {
		return 0, err
	}

	var saved []string
	cleanup := func() { s.files.RemoveAll(saved...) }

	photo, err := saveAsset(s.files, req.Photo, storage.KindImage, "photo", "", &saved)
	if err != nil {
		cleanup()
		return 0, err
	}
	audioRu, err := saveAsset(s.files, req.AudioRu, storage.KindAudio, "audio_ru", "", &saved)
	if err != nil {
		cleanup()
		return 0, err
	}
	audioEn, err := saveAsset(s.files, req.AudioEn, storage.KindAudio, "audio_en", "", &saved)
	if err != nil {
		cleanup()
		return 0, err
	}
	audioFr, err := saveAsset(s.files, req.AudioFr, storage.KindAudio, "audio_fr", "", &saved)
	if err != nil {
		cleanup()
		return 0, err
	}

	text := &model.Text{
		CategoryID: req.CategoryID,
		LevelsID:   req.LevelsID,
		UserID:     userID,
		TitleRu:    req.TitleRu,
		TitleEn:    req.TitleEn,
		TitleFr:    req.TitleFr,
		TextRu:     req.TextRu,
		TextEn:     req.TextEn,
		TextFr:     req.TextFr,
		AudioRu:    audioRu,
		AudioEn:    audioEn,
		AudioFr:    audioFr,
		Photo:      photo,
	}
	if err := s.textRepo.Create(ctx, s.db, text); err != nil {
		cleanup()
		return 0, model.ErrInternalServer
	}

	logger.Info("Text created", "text_id", text.ID, "user_id", userID)
	return text.ID, nil
}

// UpdateText keeps any asset the request omits. Newly uploaded files replace
// the stored names and the superseded files are removed only after the update
// commits; if it fails, the new files are removed instead. The text is
// reassigned to the updating principal.
func (s *textService) UpdateText(ctx context.Context, userID uint, req *model.UpdateTextRequest) error {
	existing, err := s.textRepo.FindByID(ctx, s.db, req.TextID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INVALID_TEXT", "The selected text_id is invalid.", "text_id", model.ErrInvalidInput)
		}
		return model.ErrInternalServer
	}

	if err := s.checkRefs(ctx, req.CategoryID, req.LevelsID); err != nil {
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
		"user_id":     userID,
		"title_ru":    req.TitleRu,
		"title_en":    req.TitleEn,
		"title_fr":    req.TitleFr,
		"text_ru":     req.TextRu,
		"text_en":     req.TextEn,
		"text_fr":     req.TextFr,
		"audio_ru":    audioRu,
		"audio_en":    audioEn,
		"audio_fr":    audioFr,
		"photo":       photo,
	}
	if err := s.textRepo.Update(ctx, s.db, req.TextID, updates); err != nil {
		cleanup()
		return model.ErrInternalServer
	}

	s.files.RemoveAll(superseded...)
	return nil
}

// GetText returns the text together with its word list.
func (s *textService) GetText(ctx context.Context, textID uint) (*model.TextWithWords, error) {
	text, err := s.textRepo.FindByID(ctx, s.db, textID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Not Found", "", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}

	words, err := s.wordRepo.FindByTextID(ctx, s.db, textID)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if words == nil {
		words = []*model.Word{}
	}
	return &model.TextWithWords{Text: text, Words: words}, nil
}

func (s *textService) ListTexts(ctx context.Context, f model.TextFilter) (*model.Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	texts, total, err := s.textRepo.List(ctx, s.db, f, textsPerPage)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if texts == nil {
		texts = []*model.Text{}
	}
	return &model.Page{Items: texts, Page: f.Page, PerPage: textsPerPage, Total: total}, nil
}
