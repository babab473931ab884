package handler

import (
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
)

// QuoteHandler 报价处理器
type QuoteHandler struct {
	svc *service.QuoteService
}

// NewQuoteHandler 创建报价处理器
func NewQuoteHandler(svc *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

// List 报价列表，?status= 过滤状态
func (h *QuoteHandler) List(c *gin.Context) {
	quotes, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"quotes": quotes})
}

// Get 报价详情
func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFindError(c, err, "Quote not found")
		return
	}
	Success(c, quote)
}

// Create 创建报价
func (h *QuoteHandler) Create(c *gin.Context) {
	var req service.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	quote, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, quote)
}

// Update 更新报价
func (h *QuoteHandler) Update(c *gin.Context) {
	var req service.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	quote, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondFindError(c, err, "Quote not found")
		return
	}
	Success(c, quote)
}

// Delete 删除报价
func (h *QuoteHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondFindError(c, err, "Quote not found")
		return
	}
	Success(c, nil)
}
