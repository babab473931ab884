package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/events"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InventoryService 库存服务
type InventoryService struct {
	repo  *repository.InventoryRepository
	hub   *events.Hub
	cache *inventoryCache
}

// NewInventoryService 创建库存服务
func NewInventoryService(repo *repository.InventoryRepository, hub *events.Hub) *InventoryService {
	return &InventoryService{
		repo:  repo,
		hub:   hub,
		cache: newInventoryCache(),
	}
}

// InventoryItemView 库存视图：附带状态与单项价值
type InventoryItemView struct {
	entity.InventoryItem
	StockStatus string          `json:"stock_status"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// InventoryListResult 库存列表及当前过滤集合的总价值
type InventoryListResult struct {
	Items      []InventoryItemView `json:"items"`
	TotalValue decimal.Decimal     `json:"total_value"`
}

// List 查询库存，总价值按过滤后的集合计算
func (s *InventoryService) List(ctx context.Context, params repository.InventoryListParams) (*InventoryListResult, error) {
	items, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	// 无过滤条件的整表查询顺带刷新快照
	if params.Search == "" && params.Category == "" {
		s.cache.Prime(items)
	}

	result := &InventoryListResult{
		Items:      make([]InventoryItemView, 0, len(items)),
		TotalValue: decimal.Zero,
	}
	for _, item := range items {
		value := item.TotalValue()
		result.Items = append(result.Items, InventoryItemView{
			InventoryItem: item,
			StockStatus:   item.StockStatus(),
			TotalValue:    value,
		})
		result.TotalValue = result.TotalValue.Add(value)
	}
	return result, nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return s.repo.FindByID(ctx, id)
}

// InventoryItemRequest 库存创建/更新请求
type InventoryItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Supplier    string          `json:"supplier"`
	Location    string          `json:"location"`
	Unit        string          `json:"unit"`
}

func (s *InventoryService) Create(ctx context.Context, req InventoryItemRequest) (*entity.InventoryItem, error) {
	unit := req.Unit
	if unit == "" {
		unit = "qty"
	}
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		UnitPrice:   req.UnitPrice,
		Supplier:    req.Supplier,
		Location:    req.Location,
		Unit:        unit,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("创建物料失败: %w", err)
	}

	s.cache.Apply(*item)
	s.hub.PublishRow("inventory", events.ActionInsert, item.ID, item)
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, req InventoryItemRequest) (*entity.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.SKU = req.SKU
	item.Quantity = req.Quantity
	item.MinQuantity = req.MinQuantity
	item.UnitPrice = req.UnitPrice
	item.Supplier = req.Supplier
	item.Location = req.Location
	if req.Unit != "" {
		item.Unit = req.Unit
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("更新物料失败: %w", err)
	}

	s.cache.Apply(*item)
	s.hub.PublishRow("inventory", events.ActionUpdate, item.ID, item)
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Remove(id)
	s.hub.PublishRow("inventory", events.ActionDelete, id, nil)
	return nil
}

// LowStock 低库存（含缺货）物料列表
func (s *InventoryService) LowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.repo.LowStock(ctx)
}

// CountLowStock 低库存数量，快照可用时不落库
func (s *InventoryService) CountLowStock(ctx context.Context) (int64, error) {
	if s.cache.Primed() {
		return s.cache.LowStockCount(), nil
	}
	return s.repo.CountLowStock(ctx)
}

// ItemFailure 单个物料扣减失败明细
type ItemFailure struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// InventoryUpdateError 库存扣减失败，携带逐项失败原因。
// 扣减是原子的：出现该错误时所有行都未变更。
type InventoryUpdateError struct {
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Failures []ItemFailure `json:"failures"`
}

func (e *InventoryUpdateError) Error() string {
	return fmt.Sprintf("%s: %s (%d failures)", e.Code, e.Message, len(e.Failures))
}

// ApplyUsage 按用料行扣减库存。任一行失败则整体回滚并返回 *InventoryUpdateError，
// 全部成功时广播每行变更并返回扣减后的行。
func (s *InventoryService) ApplyUsage(ctx context.Context, lines []repository.DecrementLine) ([]entity.InventoryItem, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	updated, failures, err := s.repo.DecrementQuantities(ctx, lines)
	if err != nil {
		if errors.Is(err, repository.ErrDecrementFailed) {
			updateErr := &InventoryUpdateError{
				Code:     "inventory_update_failed",
				Message:  "one or more inventory items could not be decremented",
				Failures: make([]ItemFailure, 0, len(failures)),
			}
			for _, f := range failures {
				updateErr.Failures = append(updateErr.Failures, ItemFailure{
					ItemID: f.InventoryID,
					Reason: f.Reason,
				})
			}
			return nil, updateErr
		}
		return nil, err
	}

	for i := range updated {
		s.cache.Apply(updated[i])
		s.hub.PublishRow("inventory", events.ActionUpdate, updated[i].ID, &updated[i])
	}
	return updated, nil
}

var inventoryExportHeaders = []string{
	"Name", "SKU", "Category", "Description", "Quantity", "Unit",
	"Min Quantity", "Status", "Unit Price", "Total Value", "Supplier", "Location",
}

// Export 导出库存为xlsx，金额按en-US千分位格式
func (s *InventoryService) Export(ctx context.Context, params repository.InventoryListParams) (*excelize.File, string, error) {
	items, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("list inventory: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Inventory"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range inventoryExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	printer := message.NewPrinter(language.AmericanEnglish)
	total := decimal.Zero
	for rowIdx, item := range items {
		row := rowIdx + 2
		value := item.TotalValue()
		total = total.Add(value)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Description)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.MinQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.StockStatus())
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), printer.Sprintf("$%.2f", item.UnitPrice.InexactFloat64()))
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), printer.Sprintf("$%.2f", value.InexactFloat64()))
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), item.Supplier)
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), item.Location)
	}

	// 底部汇总行
	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("%d items", len(items)))
	f.SetCellValue(sheet, fmt.Sprintf("J%d", summaryRow), printer.Sprintf("$%.2f", total.InexactFloat64()))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("L%d", summaryRow), summaryStyle)

	colWidths := []float64{24, 14, 16, 28, 10, 8, 12, 12, 12, 12, 20, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := "inventory.xlsx"
	if params.Category != "" {
		filename = fmt.Sprintf("inventory_%s.xlsx", params.Category)
	}
	return f, filename, nil
}
