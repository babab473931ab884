package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/testutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedInventory(t *testing.T, db *gorm.DB) (*InventoryRepository, []entity.InventoryItem) {
	t.Helper()
	repo := NewInventoryRepository(db)

	items := []entity.InventoryItem{
		{ID: "inv-001", Name: "Grinding Discs", Category: entity.CategoryConsumables, SKU: "CONS-GRIND", Quantity: 30, MinQuantity: 10, UnitPrice: decimal.NewFromFloat(15.99)},
		{ID: "inv-002", Name: "Argon Gas Cylinder", Category: entity.CategoryGas, SKU: "GAS-ARGON", Quantity: 2, MinQuantity: 2, UnitPrice: decimal.NewFromFloat(89.99)},
		{ID: "inv-003", Name: "Steel Plate", Category: entity.CategoryRawMaterials, SKU: "MAT-STEEL", Quantity: 0, MinQuantity: 10, UnitPrice: decimal.NewFromFloat(89.99)},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("Failed to seed inventory: %v", err)
		}
	}
	return repo, items
}

func TestInventoryListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo, _ := seedInventory(t, db)
	ctx := context.Background()

	// 不区分大小写的子串匹配
	items, err := repo.List(ctx, InventoryListParams{Search: "argon"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Argon Gas Cylinder" {
		t.Errorf("Search 'argon' returned %d items", len(items))
	}

	// 分类过滤
	items, err = repo.List(ctx, InventoryListParams{Category: entity.CategoryConsumables})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].SKU != "CONS-GRIND" {
		t.Errorf("Category filter returned %d items", len(items))
	}
}

func TestCountLowStockIncludesOutOfStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo, _ := seedInventory(t, db)

	count, err := repo.CountLowStock(context.Background())
	if err != nil {
		t.Fatalf("CountLowStock: %v", err)
	}
	// inv-002 在阈值上，inv-003 缺货
	if count != 2 {
		t.Errorf("CountLowStock = %d, want 2", count)
	}
}

func TestDecrementQuantitiesSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo, _ := seedInventory(t, db)
	ctx := context.Background()

	updated, failures, err := repo.DecrementQuantities(ctx, []DecrementLine{
		{InventoryID: "inv-001", Amount: 3},
	})
	if err != nil {
		t.Fatalf("DecrementQuantities: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("Expected no failures, got %v", failures)
	}
	if len(updated) != 1 || updated[0].Quantity != 27 {
		t.Errorf("Updated quantity = %d, want 27", updated[0].Quantity)
	}

	var item entity.InventoryItem
	db.First(&item, "id = ?", "inv-001")
	if item.Quantity != 27 {
		t.Errorf("Persisted quantity = %d, want 27", item.Quantity)
	}
}

func TestDecrementQuantitiesRollsBackOnFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo, _ := seedInventory(t, db)
	ctx := context.Background()

	// 第二行库存不足，第一行也必须回滚
	_, failures, err := repo.DecrementQuantities(ctx, []DecrementLine{
		{InventoryID: "inv-001", Amount: 3},
		{InventoryID: "inv-002", Amount: 99},
	})
	if !errors.Is(err, ErrDecrementFailed) {
		t.Fatalf("Expected ErrDecrementFailed, got %v", err)
	}
	if len(failures) != 1 || failures[0].InventoryID != "inv-002" {
		t.Fatalf("Expected failure for inv-002, got %v", failures)
	}

	var item entity.InventoryItem
	db.First(&item, "id = ?", "inv-001")
	if item.Quantity != 30 {
		t.Errorf("inv-001 quantity = %d after rollback, want 30", item.Quantity)
	}
}

func TestDecrementQuantitiesUnknownItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo, _ := seedInventory(t, db)

	_, failures, err := repo.DecrementQuantities(context.Background(), []DecrementLine{
		{InventoryID: "inv-missing", Amount: 1},
	})
	if !errors.Is(err, ErrDecrementFailed) {
		t.Fatalf("Expected ErrDecrementFailed, got %v", err)
	}
	if len(failures) != 1 || failures[0].Reason != "item not found" {
		t.Errorf("Expected item not found failure, got %v", failures)
	}
}
