package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/events"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/bitfantasy/weldshop/internal/testutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupTimesheetService(t *testing.T) (*TimesheetService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	inventorySvc := NewInventoryService(repos.Inventory, events.NewHub())
	svc := NewTimesheetService(repos.Timesheet, repos.Project, repos.Customer, inventorySvc)

	// 一个可打卡的工单和一种耗材
	db.Create(&entity.Project{ID: "proj-ts-001", Title: "Pipeline Repair", Status: entity.ProjectStatusInProgress, Priority: "high"})
	db.Create(&entity.InventoryItem{
		ID: "inv-ts-001", Name: "Grinding Discs", Category: entity.CategoryConsumables,
		SKU: "CONS-GRIND-TS", Quantity: 30, MinQuantity: 10, UnitPrice: decimal.NewFromFloat(15.99),
	})
	return svc, db
}

func TestClockInOncePerEmployee(t *testing.T) {
	svc, _ := setupTimesheetService(t)
	ctx := context.Background()

	entry, err := svc.ClockIn(ctx, "emp-001", "proj-ts-001")
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if entry.Stage != entity.StageClockedIn || !entry.Active() {
		t.Errorf("Entry stage = %s, want clocked_in", entry.Stage)
	}

	if _, err := svc.ClockIn(ctx, "emp-001", "proj-ts-001"); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Errorf("Second clock-in should fail with ErrAlreadyClockedIn, got %v", err)
	}

	// 另一名员工不受影响
	if _, err := svc.ClockIn(ctx, "emp-002", "proj-ts-001"); err != nil {
		t.Errorf("Other employee clock-in failed: %v", err)
	}
}

func TestClockOutWithoutMaterials(t *testing.T) {
	svc, db := setupTimesheetService(t)
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, "emp-001", "proj-ts-001"); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}

	entry, err := svc.ClockOut(ctx, "emp-001", ClockOutRequest{Notes: "no materials used"})
	if err != nil {
		t.Fatalf("ClockOut: %v", err)
	}
	if entry.Stage != entity.StageInventoryApplied {
		t.Errorf("Stage = %s, want inventory_applied", entry.Stage)
	}
	if entry.EndTime == nil {
		t.Error("EndTime should be set")
	}

	// 零用料不产生扣减
	var item entity.InventoryItem
	db.First(&item, "id = ?", "inv-ts-001")
	if item.Quantity != 30 {
		t.Errorf("Inventory quantity = %d, want 30 untouched", item.Quantity)
	}
	var usageCount int64
	db.Model(&entity.TimesheetMaterialUsed{}).Count(&usageCount)
	if usageCount != 0 {
		t.Errorf("Usage rows = %d, want 0", usageCount)
	}
}

func TestClockOutWithConsumableDecrementsOnce(t *testing.T) {
	svc, db := setupTimesheetService(t)
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, "emp-001", "proj-ts-001"); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}

	entry, err := svc.ClockOut(ctx, "emp-001", ClockOutRequest{
		Materials: []MaterialLine{{InventoryID: "inv-ts-001", Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("ClockOut: %v", err)
	}
	if entry.Stage != entity.StageInventoryApplied {
		t.Errorf("Stage = %s, want inventory_applied", entry.Stage)
	}

	var usage []entity.TimesheetMaterialUsed
	db.Where("timesheet_entry_id = ?", entry.ID).Find(&usage)
	if len(usage) != 1 || usage[0].QuantityUsed != 3 {
		t.Fatalf("Expected one usage row of 3, got %+v", usage)
	}

	var item entity.InventoryItem
	db.First(&item, "id = ?", "inv-ts-001")
	if item.Quantity != 27 {
		t.Errorf("Inventory quantity = %d, want 27 (single decrement of 3)", item.Quantity)
	}
}

func TestClockOutFailureKeepsEntryAndUsage(t *testing.T) {
	svc, db := setupTimesheetService(t)
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, "emp-001", "proj-ts-001"); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}

	// 超过库存量，扣减失败
	entry, err := svc.ClockOut(ctx, "emp-001", ClockOutRequest{
		Materials: []MaterialLine{{InventoryID: "inv-ts-001", Quantity: 99}},
	})
	var updateErr *InventoryUpdateError
	if !errors.As(err, &updateErr) {
		t.Fatalf("Expected *InventoryUpdateError, got %v", err)
	}
	if entry == nil {
		t.Fatal("Entry should be returned alongside the error")
	}

	// 工时与用料已落库，stage 停在 usage_logged
	var persisted entity.TimesheetEntry
	db.First(&persisted, "id = ?", entry.ID)
	if persisted.Stage != entity.StageUsageLogged {
		t.Errorf("Persisted stage = %s, want usage_logged", persisted.Stage)
	}
	if persisted.EndTime == nil {
		t.Error("EndTime should be persisted despite the failure")
	}
	var usageCount int64
	db.Model(&entity.TimesheetMaterialUsed{}).Where("timesheet_entry_id = ?", entry.ID).Count(&usageCount)
	if usageCount != 1 {
		t.Errorf("Usage rows = %d, want 1 persisted", usageCount)
	}

	// 库存未动
	var item entity.InventoryItem
	db.First(&item, "id = ?", "inv-ts-001")
	if item.Quantity != 30 {
		t.Errorf("Inventory quantity = %d, want 30", item.Quantity)
	}
}

func TestRetryResumesFromPersistedStage(t *testing.T) {
	svc, db := setupTimesheetService(t)
	ctx := context.Background()

	if _, err := svc.ClockIn(ctx, "emp-001", "proj-ts-001"); err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	entry, err := svc.ClockOut(ctx, "emp-001", ClockOutRequest{
		Materials: []MaterialLine{{InventoryID: "inv-ts-001", Quantity: 99}},
	})
	if err == nil {
		t.Fatal("Expected clock-out to fail")
	}

	// 第一次重试仍失败，库存还是不够
	if _, err := svc.Retry(ctx, entry.ID); err == nil {
		t.Fatal("Retry should still fail before restock")
	}

	// 补货后重试成功
	db.Model(&entity.InventoryItem{}).Where("id = ?", "inv-ts-001").Update("quantity", 200)
	retried, err := svc.Retry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Retry after restock: %v", err)
	}
	if retried.Stage != entity.StageInventoryApplied {
		t.Errorf("Stage = %s, want inventory_applied", retried.Stage)
	}

	var item entity.InventoryItem
	db.First(&item, "id = ?", "inv-ts-001")
	if item.Quantity != 101 {
		t.Errorf("Inventory quantity = %d, want 101 (200 - 99)", item.Quantity)
	}

	// 已完成的记录再重试是幂等的
	again, err := svc.Retry(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Idempotent retry: %v", err)
	}
	if again.Stage != entity.StageInventoryApplied {
		t.Errorf("Stage = %s after idempotent retry", again.Stage)
	}
	db.First(&item, "id = ?", "inv-ts-001")
	if item.Quantity != 101 {
		t.Errorf("Quantity changed on idempotent retry: %d", item.Quantity)
	}
}

func TestCreateWorkOrderReusesCustomerByExactName(t *testing.T) {
	svc, db := setupTimesheetService(t)
	ctx := context.Background()

	db.Create(&entity.Customer{ID: "cust-wo-001", Name: "Alberta Steel Works", Email: "info@albertasteelworks.ca"})

	project, err := svc.CreateWorkOrder(ctx, WorkOrderRequest{
		CustomerName: "Alberta Steel Works",
		Title:        "Emergency Bracket Repair",
	})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}
	if project.CustomerID == nil || *project.CustomerID != "cust-wo-001" {
		t.Error("Work order should reuse the existing customer")
	}
	if project.Status != entity.ProjectStatusPending {
		t.Errorf("Status = %s, want pending", project.Status)
	}

	var custCount int64
	db.Model(&entity.Customer{}).Count(&custCount)
	if custCount != 1 {
		t.Errorf("Customer count = %d, want 1 (no duplicate)", custCount)
	}

	// 新客户名则创建只有名称的客户
	project2, err := svc.CreateWorkOrder(ctx, WorkOrderRequest{
		CustomerName: "Brand New Customer",
		Title:        "First Job",
	})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}
	var created entity.Customer
	db.First(&created, "id = ?", *project2.CustomerID)
	if created.Name != "Brand New Customer" || created.Email != "" {
		t.Errorf("New customer should have only a name, got %+v", created)
	}
}
