package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteService 报价服务
type QuoteService struct {
	repo *repository.QuoteRepository
}

// NewQuoteService 创建报价服务
func NewQuoteService(repo *repository.QuoteRepository) *QuoteService {
	return &QuoteService{repo: repo}
}

func (s *QuoteService) List(ctx context.Context, status string) ([]entity.Quote, error) {
	return s.repo.List(ctx, status)
}

func (s *QuoteService) Get(ctx context.Context, id string) (*entity.Quote, error) {
	return s.repo.FindByID(ctx, id)
}

// QuoteRequest 报价创建/更新请求，总额由服务端按成本与税率计算
type QuoteRequest struct {
	CustomerID    *string         `json:"customer_id"`
	ProjectID     *string         `json:"project_id"`
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	MaterialsCost decimal.Decimal `json:"materials_cost"`
	LaborCost     decimal.Decimal `json:"labor_cost"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	ValidUntil    *time.Time      `json:"valid_until"`
	Notes         string          `json:"notes"`
}

// Create 创建报价，编号由当年序列生成
func (s *QuoteService) Create(ctx context.Context, req QuoteRequest) (*entity.Quote, error) {
	number, err := s.repo.NextNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("生成报价编号失败: %w", err)
	}

	status := req.Status
	if status == "" {
		status = entity.QuoteStatusDraft
	}
	taxRate := req.TaxRate
	if taxRate.IsZero() {
		taxRate = decimal.NewFromFloat(0.05)
	}

	quote := &entity.Quote{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		ProjectID:     req.ProjectID,
		QuoteNumber:   number,
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		MaterialsCost: req.MaterialsCost,
		LaborCost:     req.LaborCost,
		TaxRate:       taxRate,
		ValidUntil:    req.ValidUntil,
		Notes:         req.Notes,
	}
	quote.TotalAmount = quote.ComputeTotal()

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("创建报价失败: %w", err)
	}
	return quote, nil
}

func (s *QuoteService) Update(ctx context.Context, id string, req QuoteRequest) (*entity.Quote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quote.CustomerID = req.CustomerID
	quote.ProjectID = req.ProjectID
	quote.Title = req.Title
	quote.Description = req.Description
	if req.Status != "" {
		quote.Status = req.Status
	}
	quote.MaterialsCost = req.MaterialsCost
	quote.LaborCost = req.LaborCost
	if !req.TaxRate.IsZero() {
		quote.TaxRate = req.TaxRate
	}
	quote.ValidUntil = req.ValidUntil
	quote.Notes = req.Notes
	quote.TotalAmount = quote.ComputeTotal()

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("更新报价失败: %w", err)
	}
	return quote, nil
}

func (s *QuoteService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
