package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(s service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{service: s, logger: logger}
}

// Login issues a bearer token for an admin or moderator account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondJSON(w, http.StatusOK, struct {
		Status bool        `json:"status"`
		User   *model.User `json:"user"`
		Token  string      `json:"token"`
	}{Status: true, User: user, Token: token})
}

// Logout revokes every outstanding token of the authenticated user.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Logout"))

	user, err := middleware.GetPrincipal(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.Logout(r.Context(), user.ID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Logout ed")
}
