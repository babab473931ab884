package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyClockedIn 员工已有打卡中的工时记录
	ErrAlreadyClockedIn = errors.New("employee already clocked in")
	// ErrNoActiveEntry 员工当前没有打卡中的工时记录
	ErrNoActiveEntry = errors.New("no active timesheet entry")
	// ErrEntryNotSubmitted 工时记录仍在打卡中，不能重试结算
	ErrEntryNotSubmitted = errors.New("entry has not been submitted")
)

// TimesheetService 工时服务。下班打卡是分步结算：
// 工时落库 → 用料落库 → 库存扣减，每步完成后持久化 stage，
// 库存扣减失败时工时与用料保留，可按 stage 幂等重试。
type TimesheetService struct {
	repo      *repository.TimesheetRepository
	projects  *repository.ProjectRepository
	customers *repository.CustomerRepository
	inventory *InventoryService
}

// NewTimesheetService 创建工时服务
func NewTimesheetService(repo *repository.TimesheetRepository, projects *repository.ProjectRepository, customers *repository.CustomerRepository, inventory *InventoryService) *TimesheetService {
	return &TimesheetService{
		repo:      repo,
		projects:  projects,
		customers: customers,
		inventory: inventory,
	}
}

// WorkOrderRequest 员工现场开单请求
type WorkOrderRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
}

// CreateWorkOrder 现场开单：按客户名精确匹配复用已有客户，不存在则新建
func (s *TimesheetService) CreateWorkOrder(ctx context.Context, req WorkOrderRequest) (*entity.Project, error) {
	customer, err := s.customers.FindByExactName(ctx, req.CustomerName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = &entity.Customer{
			ID:   uuid.New().String(),
			Name: req.CustomerName,
		}
		if err := s.customers.Create(ctx, customer); err != nil {
			return nil, fmt.Errorf("创建客户失败: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	customerID := customer.ID
	project := &entity.Project{
		ID:          uuid.New().String(),
		CustomerID:  &customerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.ProjectStatusPending,
		Priority:    "medium",
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("创建工单失败: %w", err)
	}
	project.Customer = customer
	return project, nil
}

// ClockIn 上班打卡，同一员工同时只能有一条打卡中的记录
func (s *TimesheetService) ClockIn(ctx context.Context, employeeID, projectID string) (*entity.TimesheetEntry, error) {
	if _, err := s.repo.FindActiveByEmployee(ctx, employeeID); err == nil {
		return nil, ErrAlreadyClockedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("工单不存在: %w", err)
	}

	entry := &entity.TimesheetEntry{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		ProjectID:  projectID,
		StartTime:  time.Now(),
		Stage:      entity.StageClockedIn,
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("上班打卡失败: %w", err)
	}
	return entry, nil
}

// ActiveEntry 员工当前打卡中的记录
func (s *TimesheetService) ActiveEntry(ctx context.Context, employeeID string) (*entity.TimesheetEntry, error) {
	entry, err := s.repo.FindActiveByEmployee(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveEntry
	}
	return entry, err
}

// MaterialLine 下班打卡的单行用料
type MaterialLine struct {
	InventoryID string `json:"inventory_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

// ClockOutRequest 下班打卡请求
type ClockOutRequest struct {
	Notes     string         `json:"notes"`
	Materials []MaterialLine `json:"materials"`
}

// ClockOut 下班打卡结算。库存扣减失败时返回 *InventoryUpdateError，
// 但工时与用料已落库（stage=usage_logged），之后可 Retry。
func (s *TimesheetService) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (*entity.TimesheetEntry, error) {
	entry, err := s.repo.FindActiveByEmployee(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveEntry
	}
	if err != nil {
		return nil, err
	}

	// 第一步：工时落库
	now := time.Now()
	entry.EndTime = &now
	entry.DurationMinutes = now.Sub(entry.StartTime).Minutes()
	entry.Notes = req.Notes
	entry.Stage = entity.StageEntryRecorded
	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("记录工时失败: %w", err)
	}

	// 第二步：用料落库，数量为零的行丢弃
	var usage []entity.TimesheetMaterialUsed
	for _, line := range req.Materials {
		if line.Quantity <= 0 {
			continue
		}
		usage = append(usage, entity.TimesheetMaterialUsed{
			ID:               uuid.New().String(),
			TimesheetEntryID: entry.ID,
			InventoryID:      line.InventoryID,
			QuantityUsed:     line.Quantity,
		})
	}

	// 没有用料则无需扣库存，直接结束
	if len(usage) == 0 {
		entry.Stage = entity.StageInventoryApplied
		if err := s.repo.UpdateEntry(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	}

	if err := s.repo.BulkInsertUsage(ctx, usage); err != nil {
		return entry, fmt.Errorf("记录用料失败: %w", err)
	}
	entry.Stage = entity.StageUsageLogged
	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return entry, err
	}

	// 第三步：库存扣减
	return s.applyEntryUsage(ctx, entry, usage)
}

// Retry 从持久化的 stage 继续结算，已完成的记录直接返回
func (s *TimesheetService) Retry(ctx context.Context, entryID string) (*entity.TimesheetEntry, error) {
	entry, err := s.repo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	switch entry.Stage {
	case entity.StageInventoryApplied:
		return entry, nil
	case entity.StageClockedIn:
		return nil, ErrEntryNotSubmitted
	case entity.StageEntryRecorded:
		// 用料从未落库，按无用料结束
		entry.Stage = entity.StageInventoryApplied
		if err := s.repo.UpdateEntry(ctx, entry); err != nil {
			return entry, err
		}
		return entry, nil
	default: // usage_logged
		usage, err := s.repo.ListUsageByEntry(ctx, entryID)
		if err != nil {
			return entry, err
		}
		return s.applyEntryUsage(ctx, entry, usage)
	}
}

// applyEntryUsage 按持久化的用料扣减库存并推进 stage
func (s *TimesheetService) applyEntryUsage(ctx context.Context, entry *entity.TimesheetEntry, usage []entity.TimesheetMaterialUsed) (*entity.TimesheetEntry, error) {
	// 同一物料多行合并为一次扣减
	amounts := make(map[string]int)
	order := make([]string, 0, len(usage))
	for _, row := range usage {
		if _, ok := amounts[row.InventoryID]; !ok {
			order = append(order, row.InventoryID)
		}
		amounts[row.InventoryID] += row.QuantityUsed
	}
	lines := make([]repository.DecrementLine, 0, len(order))
	for _, id := range order {
		lines = append(lines, repository.DecrementLine{InventoryID: id, Amount: amounts[id]})
	}

	if _, err := s.inventory.ApplyUsage(ctx, lines); err != nil {
		return entry, err
	}

	entry.Stage = entity.StageInventoryApplied
	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return entry, err
	}
	return entry, nil
}

// ListByEmployee 员工工时记录，最近的在前
func (s *TimesheetService) ListByEmployee(ctx context.Context, employeeID string) ([]entity.TimesheetEntry, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}

// Usage 某条工时记录的用料明细
func (s *TimesheetService) Usage(ctx context.Context, entryID string) ([]entity.TimesheetMaterialUsed, error) {
	return s.repo.ListUsageByEntry(ctx, entryID)
}
