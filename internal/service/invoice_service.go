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

// InvoiceService 发票服务
type InvoiceService struct {
	repo *repository.InvoiceRepository
}

// NewInvoiceService 创建发票服务
func NewInvoiceService(repo *repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{repo: repo}
}

// InvoiceView 发票视图：附带余额
type InvoiceView struct {
	entity.Invoice
	Balance decimal.Decimal `json:"balance"`
}

func (s *InvoiceService) List(ctx context.Context, status string) ([]InvoiceView, error) {
	invoices, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	views := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, InvoiceView{
			Invoice: inv,
			Balance: inv.TotalAmount.Sub(inv.AmountPaid),
		})
	}
	return views, nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	return s.repo.FindByID(ctx, id)
}

// InvoiceRequest 发票创建/更新请求
type InvoiceRequest struct {
	CustomerID    *string         `json:"customer_id"`
	ProjectID     *string         `json:"project_id"`
	QuoteID       *string         `json:"quote_id"`
	Status        string          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	DueDate       *time.Time      `json:"due_date"`
	PaidDate      *time.Time      `json:"paid_date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// Create 创建发票，编号由当年序列生成，总额 = 小计 + 税额
func (s *InvoiceService) Create(ctx context.Context, req InvoiceRequest) (*entity.Invoice, error) {
	number, err := s.repo.NextNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("生成发票编号失败: %w", err)
	}

	invoice := &entity.Invoice{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		ProjectID:     req.ProjectID,
		QuoteID:       req.QuoteID,
		InvoiceNumber: number,
		Subtotal:      req.Subtotal,
		TaxAmount:     req.TaxAmount,
		TotalAmount:   req.Subtotal.Add(req.TaxAmount).Round(2),
		AmountPaid:    req.AmountPaid,
		DueDate:       req.DueDate,
		PaidDate:      req.PaidDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	invoice.Status = resolveInvoiceStatus(invoice, req.Status)

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("创建发票失败: %w", err)
	}
	return invoice, nil
}

func (s *InvoiceService) Update(ctx context.Context, id string, req InvoiceRequest) (*entity.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice.CustomerID = req.CustomerID
	invoice.ProjectID = req.ProjectID
	invoice.QuoteID = req.QuoteID
	invoice.Subtotal = req.Subtotal
	invoice.TaxAmount = req.TaxAmount
	invoice.TotalAmount = req.Subtotal.Add(req.TaxAmount).Round(2)
	invoice.AmountPaid = req.AmountPaid
	invoice.DueDate = req.DueDate
	invoice.PaidDate = req.PaidDate
	invoice.PaymentMethod = req.PaymentMethod
	invoice.Notes = req.Notes
	invoice.Status = resolveInvoiceStatus(invoice, req.Status)

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("更新发票失败: %w", err)
	}
	return invoice, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RecordPayment 记录收款，按累计金额推进状态
func (s *InvoiceService) RecordPayment(ctx context.Context, id string, amount decimal.Decimal, method string) (*entity.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("收款金额必须为正数")
	}

	invoice.AmountPaid = invoice.AmountPaid.Add(amount)
	if method != "" {
		invoice.PaymentMethod = method
	}
	if invoice.AmountPaid.GreaterThanOrEqual(invoice.TotalAmount) {
		invoice.Status = entity.InvoiceStatusPaid
		now := time.Now()
		invoice.PaidDate = &now
	} else {
		invoice.Status = entity.InvoiceStatusPartial
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("记录收款失败: %w", err)
	}
	return invoice, nil
}

// resolveInvoiceStatus 请求未显式指定状态时按付款进度与到期日推导
func resolveInvoiceStatus(invoice *entity.Invoice, requested string) string {
	if requested != "" {
		return requested
	}
	switch {
	case invoice.AmountPaid.GreaterThanOrEqual(invoice.TotalAmount) && invoice.TotalAmount.GreaterThan(decimal.Zero):
		return entity.InvoiceStatusPaid
	case invoice.AmountPaid.GreaterThan(decimal.Zero):
		return entity.InvoiceStatusPartial
	case invoice.DueDate != nil && invoice.DueDate.Before(time.Now()):
		return entity.InvoiceStatusOverdue
	default:
		return entity.InvoiceStatusPending
	}
}
