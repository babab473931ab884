package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/weldshop/internal/entity"
	"gorm.io/gorm"
)

// QuoteRepository 报价仓库
type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// List 按创建时间倒序查询报价，status 可选过滤
func (r *QuoteRepository) List(ctx context.Context, status string) ([]entity.Quote, error) {
	var quotes []entity.Quote
	query := r.db.WithContext(ctx).Model(&entity.Quote{}).Preload("Customer")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).Preload("Customer").Where("id = ?", id).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Quote{}).Error
}

// NextNumber 生成当年内递增的报价编号，如 Q-2026-004
func (r *QuoteRepository) NextNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("Q-%d-", year)

	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Quote{}).
		Where("quote_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}

	// 编号冲突（并发建单或手工编号占位）则继续顺延
	for n := count + 1; ; n++ {
		number := fmt.Sprintf("%s%03d", prefix, n)
		var exists int64
		if err := r.db.WithContext(ctx).Model(&entity.Quote{}).
			Where("quote_number = ?", number).
			Count(&exists).Error; err != nil {
			return "", err
		}
		if exists == 0 {
			return number, nil
		}
	}
}
