package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

type LevelHandler struct {
	service service.LevelService
	logger  *slog.Logger
}

func NewLevelHandler(s service.LevelService, logger *slog.Logger) *LevelHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LevelHandler{service: s, logger: logger}
}

func (h *LevelHandler) CreateLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateLevel"))

	var req model.CreateLevelRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.CreateLevel(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Created")
}

func (h *LevelHandler) UpdateLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateLevel"))

	var req model.UpdateLevelRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.UpdateLevel(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Updated")
}

func (h *LevelHandler) SinglePageLevel(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SinglePageLevel"))

	id, ok := webutil.FormUint(r, "level_id")
	if !ok || id == 0 {
		webutil.FailValidation(w, webutil.FieldErrors{"level_id": {"The level_id field is required."}})
		return
	}

	level, err := h.service.GetLevel(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, level)
}

func (h *LevelHandler) AllLevels(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AllLevels"))

	levels, err := h.service.ListLevels(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, levels)
}
