package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

type ModeratorHandler struct {
	service service.ModeratorService
	logger  *slog.Logger
}

func NewModeratorHandler(s service.ModeratorService, logger *slog.Logger) *ModeratorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModeratorHandler{service: s, logger: logger}
}

func (h *ModeratorHandler) CreateModerator(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateModerator"))

	var req model.CreateModeratorRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.CreateModerator(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "created")
}

func (h *ModeratorHandler) UpdateModerator(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateModerator"))

	var req model.UpdateModeratorRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.UpdateModerator(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Updated")
}

func (h *ModeratorHandler) SinglePageModerator(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SinglePageModerator"))

	id, ok := webutil.FormUint(r, "moderator_id")
	if !ok || id == 0 {
		webutil.FailValidation(w, webutil.FieldErrors{"moderator_id": {"The moderator_id field is required."}})
		return
	}

	user, err := h.service.GetModerator(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, user)
}

func (h *ModeratorHandler) GetAllModerators(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAllModerators"))

	page, err := h.service.ListModerators(r.Context(), webutil.QueryPage(r))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, page)
}
