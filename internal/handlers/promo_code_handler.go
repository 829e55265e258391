package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

type PromoCodeHandler struct {
	service service.PromoCodeService
	logger  *slog.Logger
}

func NewPromoCodeHandler(s service.PromoCodeService, logger *slog.Logger) *PromoCodeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PromoCodeHandler{service: s, logger: logger}
}

func (h *PromoCodeHandler) CreatePromoCode(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreatePromoCode"))

	var req model.CreatePromoCodeRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.CreatePromoCode(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Created")
}

func (h *PromoCodeHandler) UpdatePromoCode(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdatePromoCode"))

	var req model.UpdatePromoCodeRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.UpdatePromoCode(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Updated")
}

func (h *PromoCodeHandler) SinglePagePromoCode(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SinglePagePromoCode"))

	id, ok := webutil.FormUint(r, "code_id")
	if !ok || id == 0 {
		webutil.FailValidation(w, webutil.FieldErrors{"code_id": {"The code_id field is required."}})
		return
	}

	code, err := h.service.GetPromoCode(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, code)
}

func (h *PromoCodeHandler) GetAllPromoCodes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetAllPromoCodes"))

	page, err := h.service.ListPromoCodes(r.Context(), r.URL.Query().Get("search"), webutil.QueryPage(r))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, page)
}
