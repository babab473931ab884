package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus 工单状态（仅用于展示过滤，不做状态机约束）
const (
	ProjectStatusPending    = "pending"
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCompleted  = "completed"
)

// ProjectStatuses 全部状态
var ProjectStatuses = []string{
	ProjectStatusPending,
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
}

// ActiveProjectStatuses 仪表盘"进行中工单"口径
var ActiveProjectStatuses = []string{
	ProjectStatusPending,
	ProjectStatusPlanning,
	ProjectStatusInProgress,
}

// statusColors 状态展示色（固定映射）
var statusColors = map[string]string{
	ProjectStatusCompleted:  "#34d399",
	ProjectStatusInProgress: "#60a5fa",
	ProjectStatusPending:    "#fbbf24",
	ProjectStatusOnHold:     "#9ca3af",
	ProjectStatusPlanning:   "#c084fc",
}

// StatusColor 返回状态展示色，未知状态回退默认色
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return "#374151"
}

// Project 工单（员工侧称 work order）
type Project struct {
	ID             string          `json:"id" gorm:"primaryKey;size:36"`
	CustomerID     *string         `json:"customer_id" gorm:"size:36;index"`
	Title          string          `json:"title" gorm:"size:255;not null"`
	Description    string          `json:"description" gorm:"type:text"`
	Status         string          `json:"status" gorm:"size:50;not null;default:pending;index"`
	Priority       string          `json:"priority" gorm:"size:20;default:medium"`
	StartDate      *time.Time      `json:"start_date" gorm:"type:date"`
	DueDate        *time.Time      `json:"due_date" gorm:"type:date"`
	EstimatedHours decimal.Decimal `json:"estimated_hours" gorm:"type:decimal(5,2);default:0"`
	ActualHours    decimal.Decimal `json:"actual_hours" gorm:"type:decimal(5,2);default:0"`
	MaterialsCost  decimal.Decimal `json:"materials_cost" gorm:"type:decimal(10,2);default:0"`
	LaborRate      decimal.Decimal `json:"labor_rate" gorm:"type:decimal(8,2);default:75"`
	TotalCost      decimal.Decimal `json:"total_cost" gorm:"type:decimal(10,2);default:0"`
	Notes          string          `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Project) TableName() string {
	return "projects"
}
