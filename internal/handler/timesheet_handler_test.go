package handler

import (
	"net/http"
	"testing"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/events"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/bitfantasy/weldshop/internal/testutil"
	"github.com/shopspring/decimal"
)

func setupTimesheetTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	inventorySvc := service.NewInventoryService(repos.Inventory, events.NewHub())
	svc := service.NewTimesheetService(repos.Timesheet, repos.Project, repos.Customer, inventorySvc)
	h := NewTimesheetHandler(svc)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/timesheets", h.List)
	api.GET("/timesheets/active", h.Active)
	api.POST("/timesheets/clock-in", h.ClockIn)
	api.POST("/timesheets/clock-out", h.ClockOut)
	api.POST("/timesheets/:id/retry", h.Retry)
	api.GET("/timesheets/:id/materials", h.Usage)
	api.POST("/timesheets/work-orders", h.CreateWorkOrder)

	db.Create(&entity.Project{ID: "proj-th-001", Title: "Gate Fabrication", Status: entity.ProjectStatusInProgress, Priority: "medium"})
	db.Create(&entity.InventoryItem{
		ID: "inv-th-001", Name: "Cutting Discs", Category: entity.CategoryConsumables,
		SKU: "CONS-CUT-TH", Quantity: 25, MinQuantity: 8, UnitPrice: decimal.NewFromFloat(12.99),
	})

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestClockInClockOutFlow(t *testing.T) {
	env := setupTimesheetTest(t)
	token := testutil.EmployeeToken()

	// 未打卡时 active 为空
	w := testutil.DoRequest(env.Router, "GET", "/api/v1/timesheets/active", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Active: expected 200, got %d", w.Code)
	}
	if resp := testutil.ParseResponse(w); resp["data"] != nil {
		t.Errorf("Expected no active entry, got %v", resp["data"])
	}

	// 上班打卡
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/timesheets/clock-in",
		map[string]interface{}{"project_id": "proj-th-001"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("ClockIn: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// 重复打卡 409
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/timesheets/clock-in",
		map[string]interface{}{"project_id": "proj-th-001"}, token)
	if w.Code != http.StatusConflict {
		t.Errorf("Duplicate clock-in: expected 409, got %d", w.Code)
	}

	// 下班打卡带用料
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/timesheets/clock-out",
		map[string]interface{}{
			"notes":     "finished gate panels",
			"materials": []map[string]interface{}{{"inventory_id": "inv-th-001", "quantity": 2}},
		}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("ClockOut: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["stage"] != entity.StageInventoryApplied {
		t.Errorf("stage = %v, want inventory_applied", data["stage"])
	}

	var item entity.InventoryItem
	env.DB.First(&item, "id = ?", "inv-th-001")
	if item.Quantity != 23 {
		t.Errorf("Inventory = %d, want 23", item.Quantity)
	}
}

func TestClockOutFailureReturnsFailureDetails(t *testing.T) {
	env := setupTimesheetTest(t)
	token := testutil.EmployeeToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/timesheets/clock-in",
		map[string]interface{}{"project_id": "proj-th-001"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("ClockIn: %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/timesheets/clock-out",
		map[string]interface{}{
			"materials": []map[string]interface{}{{"inventory_id": "inv-th-001", "quantity": 999}},
		}, token)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	errPayload := data["error"].(map[string]interface{})
	if errPayload["code"] != "inventory_update_failed" {
		t.Errorf("error.code = %v", errPayload["code"])
	}
	failures := errPayload["failures"].([]interface{})
	if len(failures) != 1 {
		t.Fatalf("failures = %v", failures)
	}
	failure := failures[0].(map[string]interface{})
	if failure["item_id"] != "inv-th-001" || failure["reason"] == "" {
		t.Errorf("failure = %v", failure)
	}

	entry := data["entry"].(map[string]interface{})
	entryID := entry["id"].(string)

	// 补货后重试成功
	env.DB.Model(&entity.InventoryItem{}).Where("id = ?", "inv-th-001").Update("quantity", 1000)
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/timesheets/"+entryID+"/retry", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Retry: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestWorkOrderCreationOverHTTP(t *testing.T) {
	env := setupTimesheetTest(t)
	token := testutil.EmployeeToken()

	env.DB.Create(&entity.Customer{ID: "cust-th-001", Name: "Western Welding Works"})

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/timesheets/work-orders",
		map[string]interface{}{
			"customer_name": "Western Welding Works",
			"title":         "Combine Header Repair",
		}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["customer_id"] != "cust-th-001" {
		t.Errorf("customer_id = %v, want reuse of existing customer", data["customer_id"])
	}

	// 客户名必填
	w = testutil.DoRequest(env.Router, "POST", "/api/v1/timesheets/work-orders",
		map[string]interface{}{"title": "No Customer"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}
