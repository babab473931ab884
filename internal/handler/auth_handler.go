package handler

import (
	"errors"

	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login 邮箱密码登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			Unauthorized(c, "Invalid email or password")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, pair)
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh 刷新Token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		Unauthorized(c, "Invalid refresh token")
		return
	}
	Success(c, pair)
}

// Logout 注销
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// Me 当前登录用户
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.CurrentUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondFindError(c, err, "User not found")
		return
	}
	Success(c, user)
}
