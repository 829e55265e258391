package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/storage"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

type WordHandler struct {
	service        service.WordService
	logger         *slog.Logger
	maxUploadBytes int64
}

func NewWordHandler(s service.WordService, logger *slog.Logger, maxUploadBytes int64) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{service: s, logger: logger, maxUploadBytes: maxUploadBytes}
}

func (h *WordHandler) CreateWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateWords"))

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.Warn("Failed to parse multipart form", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categoryID, catOK := webutil.FormUint(r, "category_id")
	levelsID, lvlOK := webutil.FormUint(r, "levels_id")
	textID, txtOK := webutil.FormUint(r, "text_id")
	req := model.CreateWordRequest{
		CategoryID: categoryID,
		LevelsID:   levelsID,
		TextID:     textID,
		WordRu:     r.FormValue("word_ru"),
		WordEn:     r.FormValue("word_en"),
		WordFr:     r.FormValue("word_fr"),
	}

	errs := webutil.ValidateStruct(&req)
	if errs == nil {
		errs = webutil.FieldErrors{}
	}
	if !catOK {
		errs.Add("category_id", "The category_id must be an integer.")
	}
	if !lvlOK {
		errs.Add("levels_id", "The levels_id must be an integer.")
	}
	if !txtOK {
		errs.Add("text_id", "The text_id must be an integer.")
	}

	for _, f := range []struct {
		name string
		kind storage.Kind
		dst  **model.Upload
	}{
		{"photo", storage.KindImage, &req.Photo},
		{"audio_ru", storage.KindAudio, &req.AudioRu},
		{"audio_en", storage.KindAudio, &req.AudioEn},
		{"audio_fr", storage.KindAudio, &req.AudioFr},
	} {
		u, err := formAsset(r, f.name, f.kind, errs)
		if err != nil {
			logger.Warn("Failed to read upload", slog.String("field", f.name), slog.Any("error", err))
			webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		*f.dst = u
	}

	if len(errs) > 0 {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.CreateWord(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "word created")
}

func (h *WordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateWord"))

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.Warn("Failed to parse multipart form", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	wordID, wrdOK := webutil.FormUint(r, "word_id")
	categoryID, catOK := webutil.FormUint(r, "category_id")
	levelsID, lvlOK := webutil.FormUint(r, "levels_id")
	textID, txtOK := webutil.FormUint(r, "text_id")
	req := model.UpdateWordRequest{
		WordID:     wordID,
		CategoryID: categoryID,
		LevelsID:   levelsID,
		TextID:     textID,
		WordRu:     r.FormValue("word_ru"),
		WordEn:     r.FormValue("word_en"),
		WordFr:     r.FormValue("word_fr"),
	}

	errs := webutil.ValidateStruct(&req)
	if errs == nil {
		errs = webutil.FieldErrors{}
	}
	if !wrdOK {
		errs.Add("word_id", "The word_id must be an integer.")
	}
	if !catOK {
		errs.Add("category_id", "The category_id must be an integer.")
	}
	if !lvlOK {
		errs.Add("levels_id", "The levels_id must be an integer.")
	}
	if !txtOK {
		errs.Add("text_id", "The text_id must be an integer.")
	}

	for _, f := range []struct {
		name string
		kind storage.Kind
		dst  **model.Upload
	}{
		{"photo", storage.KindImage, &req.Photo},
		{"audio_ru", storage.KindAudio, &req.AudioRu},
		{"audio_en", storage.KindAudio, &req.AudioEn},
		{"audio_fr", storage.KindAudio, &req.AudioFr},
	} {
		u, err := formAsset(r, f.name, f.kind, errs)
		if err != nil {
			logger.Warn("Failed to read upload", slog.String("field", f.name), slog.Any("error", err))
			webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		*f.dst = u
	}

	if len(errs) > 0 {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.UpdateWord(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "updated")
}

func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	id, ok := webutil.FormUint(r, "word_id")
	if !ok || id == 0 {
		webutil.FailValidation(w, webutil.FieldErrors{"word_id": {"The word_id field is required."}})
		return
	}

	if err := h.service.DeleteWord(r.Context(), id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Deleted")
}

func (h *WordHandler) GetAllWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAllWords"))

	f := model.WordFilter{
		CategoryID: webutil.QueryUintPtr(r, "category_id"),
		LevelID:    webutil.QueryUintPtr(r, "level_id"),
		TextID:     webutil.QueryUintPtr(r, "text_id"),
		Search:     r.URL.Query().Get("search"),
		Page:       webutil.QueryPage(r),
	}

	page, err := h.service.ListWords(r.Context(), f)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, page)
}
