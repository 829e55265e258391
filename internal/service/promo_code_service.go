package service

import (
	"context"
	"errors"
	"time"

	"github.com/ArmanAleqyan/langtrio/internal/middleware"
	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/repository"

	"gorm.io/gorm"
)

const promoCodesPerPage = 10

type PromoCodeService interface {
	CreatePromoCode(ctx context.Context, req *model.CreatePromoCodeRequest) error
	UpdatePromoCode(ctx context.Context, req *model.UpdatePromoCodeRequest) error
	GetPromoCode(ctx context.Context, codeID uint) (*model.PromoCode, error)
	ListPromoCodes(ctx context.Context, search string, page int) (*model.Page, error)
}

type promoCodeService struct {
	db        *gorm.DB
	promoRepo repository.PromoCodeRepository
	agentRepo repository.AgentRepository
}

func NewPromoCodeService(db *gorm.DB, promoRepo repository.PromoCodeRepository, agentRepo repository.AgentRepository) PromoCodeService {
	return &promoCodeService{db: db, promoRepo: promoRepo, agentRepo: agentRepo}
}

// parseEndDate accepts a bare date or a full timestamp.
func parseEndDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, model.ErrInvalidInput
}

func (s *promoCodeService) validate(ctx context.Context, agentID uint, code, endDate string, excludeCodeID *uint) (time.Time, error) {
	exists, err := s.agentRepo.Exists(ctx, s.db, agentID)
	if err != nil {
		return time.Time{}, model.ErrInternalServer
	}
	if !exists {
		return time.Time{}, model.NewAppError("INVALID_AGENT", "The selected agent_id is invalid.", "agent_id", model.ErrInvalidInput)
	}

	taken, err := s.promoRepo.CodeExists(ctx, s.db, code, excludeCodeID)
	if err != nil {
		return time.Time{}, model.ErrInternalServer
	}
	if taken {
		return time.Time{}, model.NewAppError("DUPLICATE_CODE", "The code has already been taken.", "code", model.ErrInvalidInput)
	}

	end, err := parseEndDate(endDate)
	if err != nil {
		return time.Time{}, model.NewAppError("INVALID_DATE", "The end_date is not a valid date.", "end_date", model.ErrInvalidInput)
	}
	if !end.After(time.Now()) {
		return time.Time{}, model.NewAppError("PAST_DATE", "The end_date must be a date after now.", "end_date", model.ErrInvalidInput)
	}
	return end, nil
}

func (s *promoCodeService) CreatePromoCode(ctx context.Context, req *model.CreatePromoCodeRequest) error {
	end, err := s.validate(ctx, req.AgentID, req.Code, req.EndDate, nil)
	if err != nil {
		return err
	}

	code := &model.PromoCode{
		AgentID:  req.AgentID,
		Code:     req.Code,
		EndDate:  end,
		JobCount: *req.JobCount,
		Discount: *req.Discount,
	}
	if err := s.promoRepo.Create(ctx, s.db, code); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.NewAppError("DUPLICATE_CODE", "The code has already been taken.", "code", model.ErrInvalidInput)
		}
		return model.ErrInternalServer
	}
	middleware.GetLogger(ctx).Info("Promo code created", "code_id", code.ID)
	return nil
}

func (s *promoCodeService) UpdatePromoCode(ctx context.Context, req *model.UpdatePromoCodeRequest) error {
	exists, err := s.promoRepo.Exists(ctx, s.db, req.CodeID)
	if err != nil {
		return model.ErrInternalServer
	}
	if !exists {
		return model.NewAppError("INVALID_CODE", "The selected code_id is invalid.", "code_id", model.ErrInvalidInput)
	}

	end, err := s.validate(ctx, req.AgentID, req.Code, req.EndDate, &req.CodeID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"agent_id":  req.AgentID,
		"code":      req.Code,
		"end_date":  end,
		"job_count": *req.JobCount,
		"discount":  *req.Discount,
	}
	if err := s.promoRepo.Update(ctx, s.db, req.CodeID, updates); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.NewAppError("DUPLICATE_CODE", "The code has already been taken.", "code", model.ErrInvalidInput)
		}
		return model.ErrInternalServer
	}
	return nil
}

func (s *promoCodeService) GetPromoCode(ctx context.Context, codeID uint) (*model.PromoCode, error) {
	code, err := s.promoRepo.FindByID(ctx, s.db, codeID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Code Not found", "", model.ErrNotFound)
		}
		return nil, model.ErrInternalServer
	}
	return code, nil
}

func (s *promoCodeService) ListPromoCodes(ctx context.Context, search string, page int) (*model.Page, error) {
	if page < 1 {
		page = 1
	}
	codes, total, err := s.promoRepo.List(ctx, s.db, search, page, promoCodesPerPage)
	if err != nil {
		return nil, model.ErrInternalServer
	}
	if codes == nil {
		codes = []*model.PromoCode{}
	}
	return &model.Page{Items: codes, Page: page, PerPage: promoCodesPerPage, Total: total}, nil
}
