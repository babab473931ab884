package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/weldshop/internal/entity"
	"gorm.io/gorm"
)

// InvoiceRepository 发票仓库
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// List 按创建时间倒序查询发票，status 可选过滤
func (r *InvoiceRepository) List(ctx context.Context, status string) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Preload("Customer")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Preload("Customer").Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Invoice{}).Error
}

// NextNumber 生成当年内递增的发票编号，如 INV-2026-012
func (r *InvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("INV-%d-", year)

	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}

	for n := count + 1; ; n++ {
		number := fmt.Sprintf("%s%03d", prefix, n)
		var exists int64
		if err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
			Where("invoice_number = ?", number).
			Count(&exists).Error; err != nil {
			return "", err
		}
		if exists == 0 {
			return number, nil
		}
	}
}
