package repository

import (
	"context"

	"github.com/bitfantasy/weldshop/internal/entity"
	"gorm.io/gorm"
)

// TimesheetRepository 工时仓库
type TimesheetRepository struct {
	db *gorm.DB
}

func NewTimesheetRepository(db *gorm.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

func (r *TimesheetRepository) CreateEntry(ctx context.Context, entry *entity.TimesheetEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *TimesheetRepository) UpdateEntry(ctx context.Context, entry *entity.TimesheetEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *TimesheetRepository) FindEntryByID(ctx context.Context, id string) (*entity.TimesheetEntry, error) {
	var entry entity.TimesheetEntry
	err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindActiveByEmployee 查询员工当前打卡中的工时记录
func (r *TimesheetRepository) FindActiveByEmployee(ctx context.Context, employeeID string) (*entity.TimesheetEntry, error) {
	var entry entity.TimesheetEntry
	err := r.db.WithContext(ctx).Preload("Project").
		Where("employee_id = ? AND stage = ?", employeeID, entity.StageClockedIn).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByEmployee 员工工时记录，最近的在前
func (r *TimesheetRepository) ListByEmployee(ctx context.Context, employeeID string) ([]entity.TimesheetEntry, error) {
	var entries []entity.TimesheetEntry
	err := r.db.WithContext(ctx).Preload("Project").
		Where("employee_id = ?", employeeID).
		Order("start_time DESC").
		Find(&entries).Error
	return entries, err
}

// BulkInsertUsage 批量插入用料明细
func (r *TimesheetRepository) BulkInsertUsage(ctx context.Context, rows []entity.TimesheetMaterialUsed) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListUsageByEntry 某条工时记录的用料明细
func (r *TimesheetRepository) ListUsageByEntry(ctx context.Context, entryID string) ([]entity.TimesheetMaterialUsed, error) {
	var rows []entity.TimesheetMaterialUsed
	err := r.db.WithContext(ctx).
		Where("timesheet_entry_id = ?", entryID).
		Find(&rows).Error
	return rows, err
}
