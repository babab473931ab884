package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus 发票状态
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice 发票
type Invoice struct {
	ID            string          `json:"id" gorm:"primaryKey;size:36"`
	CustomerID    *string         `json:"customer_id" gorm:"size:36;index"`
	ProjectID     *string         `json:"project_id" gorm:"size:36;index"`
	QuoteID       *string         `json:"quote_id" gorm:"size:36;index"`
	InvoiceNumber string          `json:"invoice_number" gorm:"size:50;uniqueIndex;not null"`
	Status        string          `json:"status" gorm:"size:50;not null;default:pending;index"`
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TaxAmount     decimal.Decimal `json:"tax_amount" gorm:"type:decimal(10,2);default:0"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	AmountPaid    decimal.Decimal `json:"amount_paid" gorm:"type:decimal(10,2);default:0"`
	DueDate       *time.Time      `json:"due_date" gorm:"type:date"`
	PaidDate      *time.Time      `json:"paid_date" gorm:"type:date"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50"`
	Notes         string          `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Invoice) TableName() string {
	return "invoices"
}
