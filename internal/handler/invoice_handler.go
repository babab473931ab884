package handler

import (
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InvoiceHandler 发票处理器
type InvoiceHandler struct {
	svc *service.InvoiceService
}

// NewInvoiceHandler 创建发票处理器
func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// List 发票列表，?status= 过滤状态
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"invoices": invoices})
}

// Get 发票详情
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFindError(c, err, "Invoice not found")
		return
	}
	Success(c, invoice)
}

// Create 创建发票
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	invoice, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, invoice)
}

// Update 更新发票
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req service.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	invoice, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondFindError(c, err, "Invoice not found")
		return
	}
	Success(c, invoice)
}

// Delete 删除发票
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondFindError(c, err, "Invoice not found")
		return
	}
	Success(c, nil)
}

// PaymentRequest 收款请求
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method"`
}

// RecordPayment 记录收款
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	invoice, err := h.svc.RecordPayment(c.Request.Context(), c.Param("id"), req.Amount, req.Method)
	if err != nil {
		respondFindError(c, err, "Invoice not found")
		return
	}
	Success(c, invoice)
}
