package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/weldshop/internal/entity"
	"gorm.io/gorm"
)

// InventoryRepository 库存仓库
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// InventoryListParams 库存查询条件
type InventoryListParams struct {
	Search   string
	Category string
}

// List 按名称排序查询库存，search 匹配 name/description/supplier
func (r *InventoryRepository) List(ctx context.Context, params InventoryListParams) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(supplier) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.InventoryItem{}).Error
}

// LowStock 低库存（含缺货）物料
func (r *InventoryRepository) LowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity <= min_quantity").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// CountLowStock 低库存数量
func (r *InventoryRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("quantity <= min_quantity").
		Count(&count).Error
	return count, err
}

// DecrementLine 单行扣减请求
type DecrementLine struct {
	InventoryID string
	Amount      int
}

// DecrementFailure 单行扣减失败原因
type DecrementFailure struct {
	InventoryID string `json:"item_id"`
	Reason      string `json:"reason"`
}

// ErrDecrementFailed 存在扣减失败行，整个事务已回滚
var ErrDecrementFailed = errors.New("inventory decrement failed")

// DecrementQuantities 事务内扣减库存，任一行失败则全部回滚并返回失败明细。
// 返回扣减后的行用于变更广播。
func (r *InventoryRepository) DecrementQuantities(ctx context.Context, lines []DecrementLine) ([]entity.InventoryItem, []DecrementFailure, error) {
	var updated []entity.InventoryItem
	var failures []DecrementFailure

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			var item entity.InventoryItem
			if err := tx.Where("id = ?", line.InventoryID).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					failures = append(failures, DecrementFailure{
						InventoryID: line.InventoryID,
						Reason:      "item not found",
					})
					continue
				}
				return err
			}
			if line.Amount <= 0 {
				failures = append(failures, DecrementFailure{
					InventoryID: line.InventoryID,
					Reason:      "amount must be positive",
				})
				continue
			}
			if item.Quantity < line.Amount {
				failures = append(failures, DecrementFailure{
					InventoryID: line.InventoryID,
					Reason:      fmt.Sprintf("insufficient stock: have %d, need %d", item.Quantity, line.Amount),
				})
				continue
			}

			item.Quantity -= line.Amount
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
			updated = append(updated, item)
		}

		if len(failures) > 0 {
			return ErrDecrementFailed
		}
		return nil
	})

	if errors.Is(err, ErrDecrementFailed) {
		return nil, failures, err
	}
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}
