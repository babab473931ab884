package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus 报价状态
const (
	QuoteStatusDraft     = "draft"
	QuoteStatusPending   = "pending"
	QuoteStatusApproved  = "approved"
	QuoteStatusCompleted = "completed"
)

// Quote 报价单
type Quote struct {
	ID            string          `json:"id" gorm:"primaryKey;size:36"`
	CustomerID    *string         `json:"customer_id" gorm:"size:36;index"`
	ProjectID     *string         `json:"project_id" gorm:"size:36;index"`
	QuoteNumber   string          `json:"quote_number" gorm:"size:50;uniqueIndex;not null"`
	Title         string          `json:"title" gorm:"size:255;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Status        string          `json:"status" gorm:"size:50;not null;default:draft;index"`
	MaterialsCost decimal.Decimal `json:"materials_cost" gorm:"type:decimal(10,2);default:0"`
	LaborCost     decimal.Decimal `json:"labor_cost" gorm:"type:decimal(10,2);default:0"`
	TaxRate       decimal.Decimal `json:"tax_rate" gorm:"type:decimal(5,4);default:0.05"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);default:0"`
	ValidUntil    *time.Time      `json:"valid_until" gorm:"type:date"`
	Notes         string          `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Quote) TableName() string {
	return "quotes"
}

// ComputeTotal 含税总额 = (材料 + 人工) × (1 + 税率)
func (q *Quote) ComputeTotal() decimal.Decimal {
	subtotal := q.MaterialsCost.Add(q.LaborCost)
	return subtotal.Add(subtotal.Mul(q.TaxRate)).Round(2)
}
