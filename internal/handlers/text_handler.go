package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/storage"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

// formAsset reads an optional upload field, recording an allowlist failure in
// errs. A missing field is fine; only a broken multipart body is an error.
func formAsset(r *http.Request, name string, kind storage.Kind, errs webutil.FieldErrors) (*model.Upload, error) {
	u, err := webutil.FormUpload(r, name)
	if err != nil || u == nil {
		return nil, err
	}
	switch kind {
	case storage.KindImage:
		if !storage.AllowedImage(u.Header) {
			errs.Add(name, photoTypeMessage)
		}
	case storage.KindAudio:
		if !storage.AllowedAudio(u.Header) {
			errs.Add(name, fmt.Sprintf("The %s %s", name, audioTypeMessage))
		}
	}
	return u, nil
}

type TextHandler struct {
	service        service.TextService
	logger         *slog.Logger
	maxUploadBytes int64
}

func NewTextHandler(s service.TextService, logger *slog.Logger, maxUploadBytes int64) *TextHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextHandler{service: s, logger: logger, maxUploadBytes: maxUploadBytes}
}

// AddTexts creates a text; the creator is the authenticated principal. All
// four file fields are optional.
func (h *TextHandler) AddTexts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AddTexts"))

	user, err := middleware.GetPrincipal(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.Warn("Failed to parse multipart form", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categoryID, catOK := webutil.FormUint(r, "category_id")
	levelsID, lvlOK := webutil.FormUint(r, "levels_id")
	req := model.CreateTextRequest{
		CategoryID: categoryID,
		LevelsID:   levelsID,
		TitleRu:    r.FormValue("title_ru"),
		TitleEn:    r.FormValue("title_en"),
		TitleFr:    r.FormValue("title_fr"),
		TextRu:     r.FormValue("text_ru"),
		TextEn:     r.FormValue("text_en"),
		TextFr:     r.FormValue("text_fr"),
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

	textID, err := h.service.CreateText(r.Context(), user.ID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondJSON(w, http.StatusOK, struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		TextID  uint   `json:"text_id"`
	}{Status: true, Message: "Text Created", TextID: textID})
}

func (h *TextHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateText"))

	user, err := middleware.GetPrincipal(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.Warn("Failed to parse multipart form", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	textID, txtOK := webutil.FormUint(r, "text_id")
	categoryID, catOK := webutil.FormUint(r, "category_id")
	levelsID, lvlOK := webutil.FormUint(r, "levels_id")
	req := model.UpdateTextRequest{
		TextID:     textID,
		CategoryID: categoryID,
		LevelsID:   levelsID,
		TitleRu:    r.FormValue("title_ru"),
		TitleEn:    r.FormValue("title_en"),
		TitleFr:    r.FormValue("title_fr"),
		TextRu:     r.FormValue("text_ru"),
		TextEn:     r.FormValue("text_en"),
		TextFr:     r.FormValue("text_fr"),
	}

	errs := webutil.ValidateStruct(&req)
	if errs == nil {
		errs = webutil.FieldErrors{}
	}
	if !txtOK {
		errs.Add("text_id", "The text_id must be an integer.")
	}
	if !catOK {
		errs.Add("category_id", "The category_id must be an integer.")
	}
	if !lvlOK {
		errs.Add("levels_id", "The levels_id must be an integer.")
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

	if err := h.service.UpdateText(r.Context(), user.ID, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Updated")
}

// SinglePageText returns {status, data, words} with the word list at the top
// level of the envelope.
func (h *TextHandler) SinglePageText(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SinglePageText"))

	id, ok := webutil.FormUint(r, "text_id")
	if !ok || id == 0 {
		webutil.FailValidation(w, webutil.FieldErrors{"text_id": {"The text_id field is required."}})
		return
	}

	tw, err := h.service.GetText(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondJSON(w, http.StatusOK, struct {
		Status bool          `json:"status"`
		Data   *model.Text   `json:"data"`
		Words  []*model.Word `json:"words"`
	}{Status: true, Data: tw.Text, Words: tw.Words})
}

// GetAllTexts lists texts filtered by creator, category, level and search.
func (h *TextHandler) GetAllTexts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAllTexts"))

	f := model.TextFilter{
		UserID:     webutil.QueryUintPtr(r, "user_id"),
		CategoryID: webutil.QueryUintPtr(r, "category_id"),
		LevelID:    webutil.QueryUintPtr(r, "level_id"),
		Search:     r.URL.Query().Get("search"),
		Page:       webutil.QueryPage(r),
	}

	page, err := h.service.ListTexts(r.Context(), f)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, page)
}
