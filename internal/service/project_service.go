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

// ProjectService 工单服务
type ProjectService struct {
	repo      *repository.ProjectRepository
	customers *repository.CustomerRepository
}

// NewProjectService 创建工单服务
func NewProjectService(repo *repository.ProjectRepository, customers *repository.CustomerRepository) *ProjectService {
	return &ProjectService{repo: repo, customers: customers}
}

// ProjectView 工单视图：附带客户名与状态展示色
type ProjectView struct {
	entity.Project
	CustomerName string `json:"customer_name"`
	StatusColor  string `json:"status_color"`
}

// List 工单列表（新建在前），search 同时匹配标题与客户名，status 可选过滤
func (s *ProjectService) List(ctx context.Context, params repository.ProjectListParams) ([]ProjectView, error) {
	projects, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		view := ProjectView{
			Project:     p,
			StatusColor: entity.StatusColor(p.Status),
		}
		if p.Customer != nil {
			view.CustomerName = p.Customer.Name
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// ProjectRequest 工单创建/更新请求，标题与客户必填
type ProjectRequest struct {
	CustomerID     string          `json:"customer_id" binding:"required"`
	Title          string          `json:"title" binding:"required"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	Priority       string          `json:"priority"`
	StartDate      *time.Time      `json:"start_date"`
	DueDate        *time.Time      `json:"due_date"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
	ActualHours    decimal.Decimal `json:"actual_hours"`
	MaterialsCost  decimal.Decimal `json:"materials_cost"`
	LaborRate      decimal.Decimal `json:"labor_rate"`
	Notes          string          `json:"notes"`
}

func (s *ProjectService) Create(ctx context.Context, req ProjectRequest) (*entity.Project, error) {
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("客户不存在: %w", err)
	}

	status := req.Status
	if status == "" {
		status = entity.ProjectStatusPending
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	customerID := req.CustomerID
	project := &entity.Project{
		ID:             uuid.New().String(),
		CustomerID:     &customerID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         status,
		Priority:       priority,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		MaterialsCost:  req.MaterialsCost,
		LaborRate:      req.LaborRate,
		Notes:          req.Notes,
	}
	project.TotalCost = computeProjectCost(project)

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("创建工单失败: %w", err)
	}
	return project, nil
}

// Update 更新工单，状态可任意切换（展示用，不做状态机校验）
func (s *ProjectService) Update(ctx context.Context, id string, req ProjectRequest) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("客户不存在: %w", err)
	}

	customerID := req.CustomerID
	project.CustomerID = &customerID
	project.Title = req.Title
	project.Description = req.Description
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.Priority != "" {
		project.Priority = req.Priority
	}
	project.StartDate = req.StartDate
	project.DueDate = req.DueDate
	project.EstimatedHours = req.EstimatedHours
	project.ActualHours = req.ActualHours
	project.MaterialsCost = req.MaterialsCost
	project.LaborRate = req.LaborRate
	project.Notes = req.Notes
	project.TotalCost = computeProjectCost(project)

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("更新工单失败: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// computeProjectCost 总成本 = 材料 + 预估工时 × 时薪
func computeProjectCost(p *entity.Project) decimal.Decimal {
	labor := p.EstimatedHours.Mul(p.LaborRate)
	return p.MaterialsCost.Add(labor).Round(2)
}
