package service

import (
	"context"
	"errors"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"

	"gorm.io/gorm"
)

const agentsPerPage = 10

type AgentService interface {
	CreateAgent(ctx context.Context, req *model.CreateAgentRequest) error
	UpdateAgent(ctx context.Context, req *model.UpdateAgentRequest) error
	GetAgent(ctx context.Context, agentID uint) (*model.Agent, error)
	ListAgents(ctx context.Context, search string, page int) (*model.Page, error)
}

type agentService struct {
	db        *gorm.DB
	agentRepo repository.AgentRepository
}

func NewAgentService(db *gorm.DB, agentRepo repository.AgentRepository) AgentService {
	return &agentService{db: db, agentRepo: agentRepo}
}

func (s *agentService) CreateAgent(ctx context.Context, req *model.CreateAgentRequest) error {
	agent := &model.Agent{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := s.agentRepo.Create(ctx, s.db, agent); err != nil {
		return model.ErrInternalServer
	}
	middleware.GetLogger(ctx).Info("Agent created", "agent_id", agent.ID)
	return nil
}

func (s *agentService) UpdateAgent(ctx context.Context, req *model.UpdateAgentRequest) error {
	exists, err := s.agentRepo.Exists(ctx, s.db, req.AgentID)
	if err != nil {
		return model.ErrInternalServer
	}
	if !exists {
		return model.NewAppError("INVALID_AGENT", "The selected agent_id is invalid.", "agent_id", model.ErrInvalidInput)
	}

	updates := map[string]interface{}{
		"name":    req.Name,
		"surname": req.Surname,
		"email":   req.Email,
		"phone":   req.Phone,
	}
	if err := s.agentRepo.Update(ctx, s.db, req.AgentID, updates); err != nil {
		return model.ErrInternalServer
	}
	return nil
}

func (s *agentService) GetAgent(ctx context.Context, agentID uint) (*model.Agent, error) {
	agent, err := s.agentRepo.FindByID(ctx, s.db, agentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Agent Not Found", "", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	return agent, nil
}

func (s *agentService) ListAgents(ctx context.Context, search string, page int) (*model.Page, error) {
	if page < 1 {
		page = 1
	}
	agents, total, err := s.agentRepo.List(ctx, s.db, search, page, agentsPerPage)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if agents == nil {
		agents = []*model.Agent{}
	}
	return &model.Page{Items: agents, Page: page, PerPage: agentsPerPage, Total: total}, nil
}
