package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/bitfantasy/weldshop/internal/config"
	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/bitfantasy/weldshop/internal/testutil"
	"github.com/google/uuid"
)

func setupAuthTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	cfg := &config.Config{}
	cfg.JWT.Secret = testutil.JWTSecret
	cfg.JWT.AccessTokenExpire = 2 * time.Hour
	cfg.JWT.RefreshTokenExpire = 168 * time.Hour
	cfg.JWT.Issuer = "weldshop-test"

	repos := repository.NewRepositories(db)
	svc := service.NewAuthService(repos.User, nil, cfg)
	h := NewAuthHandler(svc)

	router.POST("/api/v1/auth/login", h.Login)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/auth/me", h.Me)

	hash, err := service.HashPassword("manager123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	db.Create(&entity.User{
		ID:           uuid.New().String(),
		Email:        "manager@weldshop.ca",
		PasswordHash: hash,
		Name:         "Shop Manager",
		Role:         entity.RoleManager,
		Status:       entity.UserStatusActive,
	})

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login",
		map[string]interface{}{"email": "manager@weldshop.ca", "password": "manager123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	token, _ := data["access_token"].(string)
	if token == "" {
		t.Fatal("access_token missing")
	}
	user := data["user"].(map[string]interface{})
	if user["role"] != entity.RoleManager {
		t.Errorf("user.role = %v", user["role"])
	}
	if _, exposed := user["password_hash"]; exposed {
		t.Error("password hash must not be serialized")
	}

	// 签发的 token 能通过认证中间件
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/auth/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Me with issued token: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login",
		map[string]interface{}{"email": "manager@weldshop.ca", "password": "wrong"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Bad password: expected 401, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login",
		map[string]interface{}{"email": "ghost@weldshop.ca", "password": "manager123"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Unknown user: expected 401, got %d", w.Code)
	}
}
