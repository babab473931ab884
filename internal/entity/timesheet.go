package entity

import (
	"time"
)

// TimesheetStage 下班打卡分步标记，失败可从标记处幂等重试
const (
	StageClockedIn        = "clocked_in"        // 已上班，未提交
	StageEntryRecorded    = "entry_recorded"    // 工时已落库
	StageUsageLogged      = "usage_logged"      // 用料记录已落库
	StageInventoryApplied = "inventory_applied" // 库存已扣减，流程结束
)

// TimesheetEntry 工时记录
type TimesheetEntry struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	EmployeeID      string     `json:"employee_id" gorm:"size:36;not null;index"`
	ProjectID       string     `json:"project_id" gorm:"size:36;not null;index"`
	StartTime       time.Time  `json:"start_time" gorm:"not null"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes float64    `json:"duration_minutes" gorm:"default:0"`
	Notes           string     `json:"notes" gorm:"type:text"`
	Stage           string     `json:"stage" gorm:"size:30;not null;default:clocked_in;index"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}

// Active 是否仍在打卡中
func (e *TimesheetEntry) Active() bool {
	return e.Stage == StageClockedIn && e.EndTime == nil
}

// TimesheetMaterialUsed 工时用料明细
type TimesheetMaterialUsed struct {
	ID               string    `json:"id" gorm:"primaryKey;size:36"`
	TimesheetEntryID string    `json:"timesheet_entry_id" gorm:"size:36;not null;index"`
	InventoryID      string    `json:"inventory_id" gorm:"size:36;not null;index"`
	QuantityUsed     int       `json:"quantity_used" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
}

func (TimesheetMaterialUsed) TableName() string {
	return "timesheet_materials_used"
}
