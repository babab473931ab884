package handler

import (
	"net/http"
	"testing"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/middleware"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/bitfantasy/weldshop/internal/testutil"
)

func setupCustomerTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	h := NewCustomerHandler(service.NewCustomerService(repos.Customer))

	api := testutil.AuthGroup(router, "/api/v1")
	managers := api.Group("", middleware.RequireRole("manager"))
	managers.GET("/customers", h.List)
	managers.POST("/customers", h.Create)
	managers.GET("/customers/:id", h.Get)
	managers.PUT("/customers/:id", h.Update)
	managers.DELETE("/customers/:id", h.Delete)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestCustomerCreateWithOnlyName(t *testing.T) {
	env := setupCustomerTest(t)
	token := testutil.ManagerToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/customers",
		map[string]interface{}{"name": "Walk-in Customer"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["name"] != "Walk-in Customer" {
		t.Errorf("name = %v", data["name"])
	}
	if data["email"] != "" {
		t.Errorf("email should be empty, got %v", data["email"])
	}
	if data["id"] == "" {
		t.Error("id should be generated")
	}
}

func TestCustomerCreateRequiresName(t *testing.T) {
	env := setupCustomerTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/customers",
		map[string]interface{}{"email": "no-name@test.com"}, testutil.ManagerToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestCustomerRoutesRequireManagerRole(t *testing.T) {
	env := setupCustomerTest(t)

	// 未登录
	w := testutil.DoRequest(env.Router, "GET", "/api/v1/customers", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("No token: expected 401, got %d", w.Code)
	}

	// 员工角色被拒
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/customers", nil, testutil.EmployeeToken())
	if w.Code != http.StatusForbidden {
		t.Errorf("Employee token: expected 403, got %d", w.Code)
	}

	// 管理员放行
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/customers", nil, testutil.ManagerToken())
	if w.Code != http.StatusOK {
		t.Errorf("Manager token: expected 200, got %d", w.Code)
	}
}

func TestCustomerDeleteKeepsProjects(t *testing.T) {
	env := setupCustomerTest(t)
	token := testutil.ManagerToken()

	customerID := "cust-h-001"
	env.DB.Create(&entity.Customer{ID: customerID, Name: "Departing Customer"})
	env.DB.Create(&entity.Project{ID: "proj-h-001", CustomerID: &customerID, Title: "Kept Project", Status: entity.ProjectStatusPending, Priority: "medium"})

	w := testutil.DoRequest(env.Router, "DELETE", "/api/v1/customers/"+customerID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var project entity.Project
	env.DB.First(&project, "id = ?", "proj-h-001")
	if project.CustomerID != nil {
		t.Error("Project should survive with customer reference cleared")
	}

	// 再删一次 404
	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/customers/"+customerID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("Second delete: expected 404, got %d", w.Code)
	}
}
