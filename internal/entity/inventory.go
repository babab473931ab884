package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category 库存分类
const (
	CategoryRawMaterials    = "Raw Materials"
	CategoryWeldingWire     = "Welding Wire"
	CategoryStickElectrodes = "Stick Electrodes"
	CategoryGas             = "Gas"
	CategorySafetyEquipment = "Safety Equipment"
	CategoryConsumables     = "Consumables"
	CategoryHardware        = "Hardware"
	CategoryTools           = "Tools"
)

// Categories 全部分类（表单下拉顺序）
var Categories = []string{
	CategoryRawMaterials,
	CategoryWeldingWire,
	CategoryStickElectrodes,
	CategoryGas,
	CategorySafetyEquipment,
	CategoryConsumables,
	CategoryHardware,
	CategoryTools,
}

// StockStatus 库存状态
const (
	StockStatusOut = "out_of_stock"
	StockStatusLow = "low_stock"
	StockStatusIn  = "in_stock"
)

// InventoryItem 库存物料
type InventoryItem struct {
	ID          string          `json:"id" gorm:"primaryKey;size:36"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"size:100;not null;index"`
	SKU         string          `json:"sku" gorm:"size:100;uniqueIndex"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	MinQuantity int             `json:"min_quantity" gorm:"default:0"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Supplier    string          `json:"supplier" gorm:"size:255"`
	Location    string          `json:"location" gorm:"size:100"`
	Unit        string          `json:"unit" gorm:"size:20;default:qty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}

// StockStatus 库存状态判定：quantity ≤ 0 缺货，quantity ≤ min_quantity 低库存
func (i *InventoryItem) StockStatus() string {
	if i.Quantity <= 0 {
		return StockStatusOut
	}
	if i.Quantity <= i.MinQuantity {
		return StockStatusLow
	}
	return StockStatusIn
}

// IsLowStock 低库存（含缺货）
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}

// IsConsumable 耗材类（Consumables/Gas），工时单按此拆分材料与耗材
func (i *InventoryItem) IsConsumable() bool {
	return i.Category == CategoryConsumables || i.Category == CategoryGas
}

// TotalValue 该物料库存价值 = quantity × unit_price
func (i *InventoryItem) TotalValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
