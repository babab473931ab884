package handler

import (
	"errors"

	"github.com/bitfantasy/weldshop/internal/config"
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers 处理器集合
type Handlers struct {
	Auth       *AuthHandler
	Customer   *CustomerHandler
	Project    *ProjectHandler
	Inventory  *InventoryHandler
	Quote      *QuoteHandler
	Invoice    *InvoiceHandler
	Timesheet  *TimesheetHandler
	Dashboard  *DashboardHandler
	Attachment *AttachmentHandler
	Events     *EventsHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services, cfg *config.Config, hub HubRegistry) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.Auth),
		Customer:   NewCustomerHandler(svc.Customer),
		Project:    NewProjectHandler(svc.Project),
		Inventory:  NewInventoryHandler(svc.Inventory),
		Quote:      NewQuoteHandler(svc.Quote),
		Invoice:    NewInvoiceHandler(svc.Invoice),
		Timesheet:  NewTimesheetHandler(svc.Timesheet),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Attachment: NewAttachmentHandler(svc.Attachment),
		Events:     NewEventsHandler(hub),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// Forbidden 禁止访问响应
func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// respondFindError 查询错误响应：未找到返回404，其余返回500
func respondFindError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, notFoundMsg)
		return
	}
	InternalError(c, err.Error())
}
