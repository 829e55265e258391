package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"

	"gorm.io/gorm"
)

type AgentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, agent *model.Agent) error
	FindByID(ctx context.Context, db *gorm.DB, agentID uint) (*model.Agent, error)
	Update(ctx context.Context, tx *gorm.DB, agentID uint, updates map[string]interface{}) error
	List(ctx context.Context, db *gorm.DB, search string, page, perPage int) ([]*model.Agent, int64, error)
	Exists(ctx context.Context, db *gorm.DB, agentID uint) (bool, error)
}

type gormAgentRepository struct{}

func NewGormAgentRepository() AgentRepository {
	return &gormAgentRepository{}
}

func (r *gormAgentRepository) Create(ctx context.Context, tx *gorm.DB, agent *model.Agent) error {
	result := tx.WithContext(ctx).Create(agent)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error creating agent in DB", "error", result.Error)
		return fmt.Errorf("gormAgentRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAgentRepository) FindByID(ctx context.Context, db *gorm.DB, agentID uint) (*model.Agent, error) {
	var agent model.Agent
	result := db.WithContext(ctx).First(&agent, agentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding agent by ID in DB", "error", result.Error, "agent_id", agentID)
		return nil, fmt.Errorf("gormAgentRepository.FindByID: %w", result.Error)
	}
	return &agent, nil
}

func (r *gormAgentRepository) Update(ctx context.Context, tx *gorm.DB, agentID uint, updates map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(&model.Agent{}).Where("id = ?", agentID).Updates(updates)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating agent in DB", "error", result.Error, "agent_id", agentID)
		return fmt.Errorf("gormAgentRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// List tokenizes search on whitespace; every token is OR-matched against
// name, surname, phone and email, so additional tokens widen the results.
func (r *gormAgentRepository) List(ctx context.Context, db *gorm.DB, search string, page, perPage int) ([]*model.Agent, int64, error) {
	q := db.WithContext(ctx).Model(&model.Agent{})

	if parts := strings.Fields(search); len(parts) > 0 {
		var conds []string
		var args []interface{}
		for _, part := range parts {
			conds = append(conds, "(name LIKE ? OR surname LIKE ? OR phone LIKE ? OR email LIKE ?)")
			pat := "%" + part + "%"
			args = append(args, pat, pat, pat, pat)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error counting agents in DB", "error", err)
		return nil, 0, fmt.Errorf("gormAgentRepository.List: %w", err)
	}

	var agents []*model.Agent
	result := q.Order("id DESC").Offset((page - 1) * perPage).Limit(perPage).Find(&agents)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing agents in DB", "error", result.Error)
		return nil, 0, fmt.Errorf("gormAgentRepository.List: %w", result.Error)
	}
	return agents, total, nil
}

func (r *gormAgentRepository) Exists(ctx context.Context, db *gorm.DB, agentID uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Agent{}).Where("id = ?", agentID).Count(&count).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error checking agent existence in DB", "error", err)
		return false, fmt.Errorf("gormAgentRepository.Exists: %w", err)
	}
	return count > 0, nil
}
