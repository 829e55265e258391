package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/storage"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

const (
	photoTypeMessage = "The photo must be a file of type: jpeg, png, jpg, gif, webp."
	audioTypeMessage = "must be a file of type: mp3, wav, mpga."
)

type CategoryHandler struct {
	service        service.CategoryService
	logger         *slog.Logger
	maxUploadBytes int64
}

func NewCategoryHandler(s service.CategoryService, logger *slog.Logger, maxUploadBytes int64) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{service: s, logger: logger, maxUploadBytes: maxUploadBytes}
}

// CreateCategory takes multipart form data; the photo is required here,
// unlike on text and word uploads.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateCategory"))

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.Warn("Failed to parse multipart form", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := model.CreateCategoryRequest{
		NameRu: r.FormValue("name_ru"),
		NameEn: r.FormValue("name_en"),
		NameFr: r.FormValue("name_fr"),
	}

	errs := webutil.ValidateStruct(&req)
	if errs == nil {
		errs = webutil.FieldErrors{}
	}

	photo, err := webutil.FormUpload(r, "photo")
	if err != nil {
		logger.Warn("Failed to read photo upload", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch {
	case photo == nil:
		errs.Add("photo", "The photo field is required.")
	case !storage.AllowedImage(photo.Header):
		errs.Add("photo", photoTypeMessage)
	}

	if len(errs) > 0 {
		webutil.FailValidation(w, errs)
		return
	}
	req.Photo = photo

	if err := h.service.CreateCategory(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Created")
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateCategory"))

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		logger.Warn("Failed to parse multipart form", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categoryID, ok := webutil.FormUint(r, "category_id")
	req := model.UpdateCategoryRequest{
		CategoryID: categoryID,
		NameRu:     r.FormValue("name_ru"),
		NameEn:     r.FormValue("name_en"),
		NameFr:     r.FormValue("name_fr"),
	}

	errs := webutil.ValidateStruct(&req)
	if errs == nil {
		errs = webutil.FieldErrors{}
	}
	if !ok {
		errs.Add("category_id", "The category_id must be an integer.")
	}

	photo, err := webutil.FormUpload(r, "photo")
	if err != nil {
		logger.Warn("Failed to read photo upload", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if photo != nil && !storage.AllowedImage(photo.Header) {
		errs.Add("photo", photoTypeMessage)
	}

	if len(errs) > 0 {
		webutil.FailValidation(w, errs)
		return
	}
	req.Photo = photo

	if err := h.service.UpdateCategory(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "updated")
}

func (h *CategoryHandler) SinglePageCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SinglePageCategory"))

	id, ok := webutil.FormUint(r, "category_id")
	if !ok || id == 0 {
		webutil.FailValidation(w, webutil.FieldErrors{"category_id": {"The category_id field is required."}})
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, category)
}

func (h *CategoryHandler) AllCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AllCategory"))

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, categories)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCategory"))

	id, ok := webutil.FormUint(r, "category_id")
	if !ok || id == 0 {
		webutil.FailValidation(w, webutil.FieldErrors{"category_id": {"The category_id field is required."}})
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Deleted")
}
