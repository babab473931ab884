package handler

import (
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
)

// CustomerHandler 客户处理器
type CustomerHandler struct {
	svc *service.CustomerService
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List 客户列表，?search= 匹配名称/邮箱/电话
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"customers": customers})
}

// Get 客户详情
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFindError(c, err, "Customer not found")
		return
	}
	Success(c, customer)
}

// Create 创建客户
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, customer)
}

// Update 更新客户
func (h *CustomerHandler) Update(c *gin.Context) {
	var req service.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondFindError(c, err, "Customer not found")
		return
	}
	Success(c, customer)
}

// Delete 删除客户，关联工单/报价/发票的客户引用置空
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondFindError(c, err, "Customer not found")
		return
	}
	Success(c, nil)
}
