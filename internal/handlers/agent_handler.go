package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/service"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

type AgentHandler struct {
	service service.AgentService
	logger  *slog.Logger
}

func NewAgentHandler(s service.AgentService, logger *slog.Logger) *AgentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AgentHandler{service: s, logger: logger}
}

func (h *AgentHandler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateAgent"))

	var req model.CreateAgentRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.CreateAgent(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "Agent Created")
}

func (h *AgentHandler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateAgent"))

	var req model.UpdateAgentRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		webutil.FailMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := webutil.ValidateStruct(&req); errs != nil {
		webutil.FailValidation(w, errs)
		return
	}

	if err := h.service.UpdateAgent(r.Context(), &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.Success(w, "updated")
}

func (h *AgentHandler) SinglePageAgent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SinglePageAgent"))

	id, ok := webutil.FormUint(r, "agent_id")
	if !ok || id == 0 {
		webutil.FailValidation(w, webutil.FieldErrors{"agent_id": {"The agent_id field is required."}})
		return
	}

	agent, err := h.service.GetAgent(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, agent)
}

func (h *AgentHandler) AllAgents(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AllAgents"))

	page, err := h.service.ListAgents(r.Context(), r.URL.Query().Get("search"), webutil.QueryPage(r))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.SuccessData(w, page)
}
